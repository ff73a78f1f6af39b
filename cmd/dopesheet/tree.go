package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ivlev/dopesheet/internal/clip"
	"github.com/ivlev/dopesheet/internal/hierarchy"
	"github.com/ivlev/dopesheet/internal/source"
)

func NewTreeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the dope sheet hierarchy",
		Long:  `Print the clip's curves grouped by object and property, with missing rotation axes marked.`,
		Args:  cobra.NoArgs,
		RunE:  makeTreeRunner(a),
	}

	cmd.Flags().Bool("collapsed", false, "Hide the members of property groups")
	cmd.Flags().Bool("all", false, "Show every clip when --clip is a directory")
	return cmd
}

func makeTreeRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		collapsed, _ := cmd.Flags().GetBool("collapsed")
		if all, _ := cmd.Flags().GetBool("all"); all {
			return printAllTrees(cmd, !collapsed)
		}

		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		return printTree(cmd.OutOrStdout(), a.src.Name(), s.Tree(), !collapsed)
	}
}

func printAllTrees(cmd *cobra.Command, expand bool) error {
	dir, _ := cmd.Flags().GetString("clip")
	paths, err := clip.ListClips(dir)
	if err != nil {
		return err
	}

	clips, err := clip.LoadClips(cmd.Context(), paths)
	if err != nil {
		return err
	}
	for i, c := range clips {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		src := source.NewClipSource(c, paths[i])
		if err := printTree(cmd.OutOrStdout(), c.Name, buildTree(src), expand); err != nil {
			return err
		}
	}
	return nil
}

func printTree(w io.Writer, name string, root *hierarchy.Node, expand bool) error {
	if len(root.Children) == 0 {
		fmt.Fprintf(w, "%s: no curves\n", name)
		return nil
	}

	exp := hierarchy.NewExpansion()
	if expand {
		exp.ExpandAll(root)
	}

	fmt.Fprintln(w, name)
	return hierarchy.Render(w, hierarchy.Flatten(root, exp))
}
