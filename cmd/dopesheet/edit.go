package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewAddKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-key <binding> <time> <value>",
		Short: "Insert a key",
		Long: `Insert a key at a time in seconds. A key already in the same frame is replaced.
The curve is created when missing; pass --ref for object reference curves.`,
		Args: cobra.ExactArgs(3),
		RunE: makeAddKeyRunner(a),
	}

	cmd.Flags().Bool("ref", false, "Value is an object reference")
	cmd.Flags().String("tangent", "", "Tangent mode (free|linear|constant|auto|clamped_auto)")
	return cmd
}

func makeAddKeyRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.open(cmd)
		if err != nil {
			return err
		}

		ref, _ := cmd.Flags().GetBool("ref")
		b, err := parseBinding(args[0], ref)
		if err != nil {
			return err
		}
		t, err := parseSeconds(args[1])
		if err != nil {
			return err
		}
		key, err := keyFromFlags(cmd, b, args[2])
		if err != nil {
			return err
		}

		if _, err := s.AddKey(b, t, key); err != nil {
			return fmt.Errorf("add key: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[*] Added key on %s at %s\n", b, s.At(t))
		return a.save(cmd)
	}
}

func NewRemoveKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-key <binding> <time>",
		Short: "Remove a key",
		Long: `Remove the key in the frame of the given time. With --until, remove every key
after that frame up to and including the frame of --until on all curves; the
binding argument is then ignored and may be "-".`,
		Args: cobra.ExactArgs(2),
		RunE: makeRemoveKeyRunner(a),
	}

	cmd.Flags().Float64("until", -1, "End of a range removal in seconds")
	return cmd
}

func makeRemoveKeyRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		t, err := parseSeconds(args[1])
		if err != nil {
			return err
		}

		var removed int
		if until, _ := cmd.Flags().GetFloat64("until"); until >= 0 {
			removed, err = s.RemoveKeysAtRange(t, until)
		} else {
			b, perr := resolveBinding(s, args[0])
			if perr != nil {
				return perr
			}
			removed, err = s.RemoveKey(b, t)
		}
		if err != nil {
			return fmt.Errorf("remove key: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "[*] Removed %d keys\n", removed)
		return a.save(cmd)
	}
}
