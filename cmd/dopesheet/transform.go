package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/ivlev/dopesheet/internal/engine"
	"github.com/ivlev/dopesheet/internal/transform"
)

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("from", 0, "Select keys at or after this time")
	cmd.Flags().Float64("to", math.Inf(1), "Select keys at or before this time")
	cmd.Flags().StringSlice("curve", nil, "Limit the selection to these bindings")
	cmd.Flags().Bool("ripple", false, "Shift later keys on every curve along with the selection")
}

// selectFromFlags selects the keys a transform command works on
func selectFromFlags(cmd *cobra.Command, s *engine.Session) error {
	from, _ := cmd.Flags().GetFloat64("from")
	to, _ := cmd.Flags().GetFloat64("to")
	only, _ := cmd.Flags().GetStringSlice("curve")

	s.SelectRange(from, to)
	if len(only) > 0 {
		keep := make(map[string]bool, len(only))
		for _, arg := range only {
			b, err := resolveBinding(s, arg)
			if err != nil {
				return err
			}
			keep[b.String()] = true
		}
		for _, ref := range s.Selection().Refs() {
			if !keep[ref.Binding.String()] {
				s.Selection().Deselect(ref)
			}
		}
	}

	if s.Selection().Len() == 0 {
		return transform.ErrEmptySelection
	}
	return nil
}

func NewMoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move selected keys",
		Long:  `Shift the selected keys by --time seconds and --value units.`,
		Args:  cobra.NoArgs,
		RunE:  makeMoveRunner(a),
	}

	addSelectionFlags(cmd)
	cmd.Flags().Float64("time", 0, "Time offset in seconds")
	cmd.Flags().Float64("value", 0, "Value offset")
	return cmd
}

func makeMoveRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		if err := selectFromFlags(cmd, s); err != nil {
			return err
		}

		dt, _ := cmd.Flags().GetFloat64("time")
		dv, _ := cmd.Flags().GetFloat64("value")
		ripple, _ := cmd.Flags().GetBool("ripple")

		n := s.Selection().Len()
		if err := s.Move(dt, dv, ripple); err != nil {
			return fmt.Errorf("move: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[*] Moved %d keys by %gs, %g\n", n, dt, dv)
		return a.save(cmd)
	}
}

func NewScaleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scale <factor>",
		Short: "Scale selected keys",
		Long: `Scale the selection box by dragging one of its handles, as the editor does.
The opposite edge is the pivot. A negative factor mirrors the keys.`,
		Args: cobra.ExactArgs(1),
		RunE: makeScaleRunner(a),
	}

	addSelectionFlags(cmd)
	cmd.Flags().String("axis", "time", "Axis to scale (time|value)")
	cmd.Flags().String("pivot", "start", "Edge that stays in place (start|end)")
	return cmd
}

func makeScaleRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		factor, err := parseSeconds(args[0])
		if err != nil {
			return fmt.Errorf("invalid factor %q", args[0])
		}
		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		if err := selectFromFlags(cmd, s); err != nil {
			return err
		}

		axis, _ := cmd.Flags().GetString("axis")
		pivot, _ := cmd.Flags().GetString("pivot")
		ripple, _ := cmd.Flags().GetBool("ripple")

		m := s.Manipulator()
		m.Ripple = ripple
		handle, grab, target, err := scaleGesture(m.Bounds(), axis, pivot, factor)
		if err != nil {
			return err
		}

		if err := m.Begin(handle, grab); err != nil {
			return fmt.Errorf("scale: %w", err)
		}
		if err := m.Drag(target); err != nil {
			_ = m.Cancel()
			return fmt.Errorf("scale: %w", err)
		}
		if err := m.End(); err != nil {
			return fmt.Errorf("scale: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "[*] Scaled %s by %g around the %s edge\n", axis, factor, pivot)
		return a.save(cmd)
	}
}

// scaleGesture picks the handle to drag and where to drop it so the box
// grows by factor around the pivot edge.
func scaleGesture(b transform.Bounds, axis, pivot string, factor float64) (transform.Handle, transform.Point, transform.Point, error) {
	mid := transform.Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}

	switch axis {
	case "time":
		grab := transform.Point{X: b.Max.X, Y: mid.Y}
		handle, origin, extent := transform.HandleRight, b.Min.X, b.Width()
		if pivot == "end" {
			grab.X = b.Min.X
			handle, origin, extent = transform.HandleLeft, b.Max.X, -b.Width()
		}
		return handle, grab, transform.Point{X: origin + factor*extent, Y: mid.Y}, nil
	case "value":
		grab := transform.Point{X: mid.X, Y: b.Max.Y}
		handle, origin, extent := transform.HandleTop, b.Min.Y, b.Height()
		if pivot == "end" {
			grab.Y = b.Min.Y
			handle, origin, extent = transform.HandleBottom, b.Max.Y, -b.Height()
		}
		return handle, grab, transform.Point{X: mid.X, Y: origin + factor*extent}, nil
	}
	return transform.HandleNone, transform.Point{}, transform.Point{}, fmt.Errorf("unknown axis %q", axis)
}
