package main

import (
	"fmt"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ivlev/dopesheet/internal/curve"
)

func NewEvalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <binding> <time>",
		Short: "Evaluate a curve",
		Long:  `Sample a curve at a time in seconds. Bindings are written path:Type.property.`,
		Args:  cobra.ExactArgs(2),
		RunE:  makeEvalRunner(a),
	}

	return cmd
}

func makeEvalRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		b, err := resolveBinding(s, args[0])
		if err != nil {
			return err
		}
		b = s.DisplayBinding(b)
		t, err := parseSeconds(args[1])
		if err != nil {
			return err
		}

		v, err := s.Sample(b, t)
		if err != nil {
			return err
		}
		if b.IsPPtrCurve {
			fmt.Fprintf(cmd.OutOrStdout(), "%s @ %s = %s\n", b, s.At(t), v.Ref)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s @ %s = %g\n", b, s.At(t), v.Number)
		return nil
	}
}

func NewKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <binding>",
		Short: "List the keys of a curve",
		Args:  cobra.ExactArgs(1),
		RunE:  makeKeysRunner(a),
	}

	return cmd
}

func makeKeysRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		b, err := resolveBinding(s, args[0])
		if err != nil {
			return err
		}
		c, err := s.Curve(b)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FRAME\tTIME\tVALUE\tIN\tOUT\tTANGENT")
		for i := 0; i < c.Len(); i++ {
			k := c.Key(i)
			value := fmt.Sprintf("%g", k.Value)
			if c.IsPPtr() {
				value = k.Ref
			}
			fmt.Fprintf(tw, "%d\t%.5f\t%s\t%s\t%s\t%s\n",
				s.At(k.Time).Frame(), k.Time, value,
				tangent(k.InTangent), tangent(k.OutTangent), k.TangentMode)
		}
		return tw.Flush()
	}
}

func tangent(v float64) string {
	if math.IsInf(v, 0) {
		return "step"
	}
	return fmt.Sprintf("%.4g", v)
}

// keyFromFlags builds the key add-key inserts
func keyFromFlags(cmd *cobra.Command, b curve.Binding, value string) (curve.Keyframe, error) {
	if b.IsPPtrCurve {
		return curve.NewRefKeyframe(0, value), nil
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return curve.Keyframe{}, fmt.Errorf("invalid value %q: %w", value, err)
	}
	key := curve.NewKeyframe(0, v)

	if name, _ := cmd.Flags().GetString("tangent"); name != "" {
		mode, ok := curve.ParseTangentMode(name)
		if !ok {
			return key, fmt.Errorf("unknown tangent mode %q", name)
		}
		key.TangentMode = mode
	}
	return key, nil
}
