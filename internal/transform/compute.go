package transform

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
)

var (
	// ErrHandleOverlapsPivot rejects a scale update whose handle would reach the pivot.
	ErrHandleOverlapsPivot = errors.New("scale handle overlaps pivot")
	// ErrAxisDisabled is returned when scaling an axis with no extent.
	ErrAxisDisabled = errors.New("scale axis disabled")
)

// ScaleStep is a one-axis scale about a pivot. When Translation is set the
// anchor coincided with the pivot and the step is a plain shift instead.
type ScaleStep struct {
	Pivot       float64
	Factor      float64
	Translation float64
	Flip        bool
}

// ComputeScale derives the scale that carries the handle from fromValue to
// toValue around pivot. offset is the grab distance between pointer and
// handle edge; threshold is the smallest allowed numerator.
func ComputeScale(fromValue, toValue, offset, pivot, threshold float64) (ScaleStep, error) {
	num := toValue - pivot
	denom := fromValue - pivot

	if math.Abs(num)-offset < 0 {
		return ScaleStep{}, ErrHandleOverlapsPivot
	}

	if num < 0 {
		num -= offset
	} else {
		num += offset
	}

	if math.Abs(denom) < 1e-9 {
		return ScaleStep{Pivot: pivot, Factor: 1, Translation: num}, nil
	}

	if math.Abs(num) < threshold {
		if num < 0 {
			num = -threshold
		} else {
			num = threshold
		}
	}

	factor := num / denom
	return ScaleStep{Pivot: pivot, Factor: factor, Flip: factor < 0}, nil
}

// TimeMatrix embeds the step on the time axis.
func (s ScaleStep) TimeMatrix() f64.Aff3 {
	if s.Translation != 0 {
		return Translate(s.Translation, 0)
	}
	return Mul(Translate(s.Pivot, 0), Mul(Scale(s.Factor, 1), Translate(-s.Pivot, 0)))
}

// ValueMatrix embeds the step on the value axis.
func (s ScaleStep) ValueMatrix() f64.Aff3 {
	if s.Translation != 0 {
		return Translate(0, s.Translation)
	}
	return Mul(Translate(0, s.Pivot), Mul(Scale(1, s.Factor), Translate(0, -s.Pivot)))
}

// ComputeScaleTime scales the time axis. The threshold is one frame, or
// fallback when the frame rate is about zero.
func ComputeScaleTime(fromTime, toTime, offset, pivot, frameRate, fallback float64) (f64.Aff3, bool, error) {
	threshold := fallback
	if frameRate > 1e-6 {
		threshold = 1 / frameRate
	}
	step, err := ComputeScale(fromTime, toTime, offset, pivot, threshold)
	if err != nil {
		return Identity(), false, err
	}
	return step.TimeMatrix(), step.Flip, nil
}

// ComputeScaleValue scales the value axis.
func ComputeScaleValue(fromValue, toValue, offset, pivot, threshold float64) (f64.Aff3, bool, error) {
	step, err := ComputeScale(fromValue, toValue, offset, pivot, threshold)
	if err != nil {
		return Identity(), false, err
	}
	return step.ValueMatrix(), step.Flip, nil
}

// ComputeMove translates by the pointer delta.
func ComputeMove(from, to Point) f64.Aff3 {
	return Translate(to.X-from.X, to.Y-from.Y)
}
