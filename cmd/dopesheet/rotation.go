package main

import (
	"bytes"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/ivlev/dopesheet/internal/clip"
	"github.com/ivlev/dopesheet/internal/curve"
	"github.com/ivlev/dopesheet/internal/rotation"
)

func NewConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <mode> [binding...]",
		Short: "Convert rotation interpolation",
		Long: `Move rotation curves to another interpolation mode (baked|non-baked|raw-euler).
Without bindings every rotation curve of the clip is converted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: makeConvertRunner(a),
	}

	cmd.Flags().Bool("diff", false, "Print a diff of the clip document")
	return cmd
}

func makeConvertRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		target, err := rotation.ParseMode(args[0])
		if err != nil {
			return err
		}
		s, err := a.open(cmd)
		if err != nil {
			return err
		}

		var bindings []curve.Binding
		for _, arg := range args[1:] {
			b, err := resolveBinding(s, arg)
			if err != nil {
				return err
			}
			bindings = append(bindings, b)
		}
		if len(bindings) == 0 {
			for _, b := range s.Store().Bindings() {
				if rotation.Classify(b) != rotation.Undefined {
					bindings = append(bindings, b)
				}
			}
		}

		before, err := clip.Marshal(a.src.Clip())
		if err != nil {
			return err
		}

		res, err := s.ConvertRotation(bindings, target)
		if err != nil {
			return fmt.Errorf("convert: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, b := range curve.SortBindings(keysOf(res.Converted)) {
			fmt.Fprintf(out, "[*] %s -> %s\n", b, res.Converted[b].PropertyName)
		}
		fmt.Fprintf(out, "[*] Converted %d curves, skipped %d\n", len(res.Converted), len(res.Skipped))

		if show, _ := cmd.Flags().GetBool("diff"); show {
			after, err := clip.Marshal(a.src.Clip())
			if err != nil {
				return err
			}
			fmt.Fprint(out, lineDiff(before, after))
		}

		return a.save(cmd)
	}
}

func keysOf(m map[curve.Binding]curve.Binding) []curve.Binding {
	out := make([]curve.Binding, 0, len(m))
	for b := range m {
		out = append(out, b)
	}
	return out
}

// lineDiff renders a line-level diff with +/- prefixes
func lineDiff(before, after []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf bytes.Buffer
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffEqual:
			continue
		}
		for _, line := range bytes.SplitAfter([]byte(d.Text), []byte("\n")) {
			if len(line) == 0 {
				continue
			}
			buf.WriteString(prefix)
			buf.Write(line)
		}
	}
	return buf.String()
}

func NewRemapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remap <binding>",
		Short: "Show which rotation curve backs a binding",
		Args:  cobra.ExactArgs(1),
		RunE:  makeRemapRunner(a),
	}

	return cmd
}

func makeRemapRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		b, err := parseBinding(args[0], false)
		if err != nil {
			return err
		}

		shown := s.DisplayBinding(b)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) -> %s (%s)\n",
			b, rotation.Classify(b), shown, rotation.Classify(shown))
		return nil
	}
}
