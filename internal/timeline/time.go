package timeline

import (
	"fmt"
	"math"
)

// timeEpsilon is the tolerance used when comparing continuous times.
const timeEpsilon = 1e-6

// Time pairs a continuous time (seconds) with the frame it quantizes to
// at a given frame rate.
type Time struct {
	time  float64
	frame int
	rate  float64
}

// FromTime builds a Time from seconds. Negative times clamp to zero and the
// frame is the nearest whole frame.
func FromTime(t, frameRate float64) Time {
	t = math.Max(t, 0)
	return Time{
		time:  t,
		frame: int(math.Round(t * frameRate)),
		rate:  frameRate,
	}
}

// FromFrame builds a Time from a frame index. Negative frames clamp to zero.
func FromFrame(frame int, frameRate float64) Time {
	if frame < 0 {
		frame = 0
	}
	t := 0.0
	if frameRate > 0 {
		t = float64(frame) / frameRate
	}
	return Time{
		time:  t,
		frame: frame,
		rate:  frameRate,
	}
}

// Time returns the continuous time in seconds.
func (t Time) Time() float64 { return t.time }

// Frame returns the quantized frame index.
func (t Time) Frame() int { return t.frame }

// FrameRate returns the frame rate used for quantization.
func (t Time) FrameRate() float64 { return t.rate }

// FrameFloor is the start of the interval owned by the frame.
func (t Time) FrameFloor() float64 {
	return (float64(t.frame) - 0.5) / t.rate
}

// FrameCeiling is the end (exclusive) of the interval owned by the frame.
func (t Time) FrameCeiling() float64 {
	return (float64(t.frame) + 0.5) / t.rate
}

// ContainsTime reports whether seconds falls inside [FrameFloor, FrameCeiling).
func (t Time) ContainsTime(seconds float64) bool {
	return seconds >= t.FrameFloor() && seconds < t.FrameCeiling()
}

// Equal requires identical frame and frame rate and approximately equal time.
func (t Time) Equal(o Time) bool {
	return t.frame == o.frame && t.rate == o.rate && Approximately(t.time, o.time)
}

func (t Time) String() string {
	return fmt.Sprintf("%.5fs (frame %d @ %g fps)", t.time, t.frame, t.rate)
}

// SnapToFrame rounds seconds to the nearest frame boundary.
func SnapToFrame(seconds, frameRate float64) float64 {
	if frameRate <= 0 {
		return seconds
	}
	return math.Round(seconds*frameRate) / frameRate
}

// Approximately compares two floats with a tolerance scaled to their magnitude.
func Approximately(a, b float64) bool {
	return math.Abs(a-b) <= math.Max(timeEpsilon*math.Max(math.Abs(a), math.Abs(b)), timeEpsilon)
}
