package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/dopesheet/internal/system"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dopesheet",
		Short:         "Inspect and edit animation clip keyframes",
		Long:          `A dope sheet for YAML animation clips: grouped curve view, key edits, rotation conversion and selection transforms.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.started = time.Now()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.reportStats(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	addSubcommands(rootCmd, a)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "dopesheet.yaml", "Config file (missing file uses defaults)")
	cmd.PersistentFlags().String("clip", "clips", "Clip file, or a directory to use its newest clip")
	cmd.PersistentFlags().Float64("fps", 0, "Frame rate for clips that do not declare one")
	cmd.PersistentFlags().Bool("stats", false, "Print a resource report after the command")
	cmd.PersistentFlags().Bool("dry-run", false, "Do not write edits back to the clip")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewTreeCmd(a),
		NewEvalCmd(a),
		NewKeysCmd(a),
		NewAddKeyCmd(a),
		NewRemoveKeyCmd(a),
		NewConvertCmd(a),
		NewRemapCmd(a),
		NewMoveCmd(a),
		NewScaleCmd(a),
		NewWatchCmd(a),
		NewNewCmd(a),
		NewConfigCmd(a),
	)
}

func (a *app) reportStats(cmd *cobra.Command) error {
	stats, _ := cmd.Flags().GetBool("stats")
	if !stats && (a.cfg == nil || !a.cfg.ShowStats) {
		return nil
	}

	curves := 0
	if a.session != nil {
		curves = a.session.Store().Len()
	}
	report, err := system.Collect(cmd.Name(), time.Since(a.started), curves)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "[!] %v\n", err)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), report.String())
	return nil
}
