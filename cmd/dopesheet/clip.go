package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/dopesheet/internal/clip"
	"github.com/ivlev/dopesheet/internal/config"
)

func NewNewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create an empty clip",
		Long: `Create an empty clip. When --clip names a directory the file gets a
timestamped name inside it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: makeNewRunner(a),
	}

	cmd.Flags().Bool("legacy", false, "Mark the clip as using the legacy animation system")
	return cmd
}

func makeNewRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := a.loadConfig(cmd)
		if err != nil {
			return err
		}

		name := "clip"
		if len(args) > 0 {
			name = args[0]
		}

		path, _ := cmd.Flags().GetString("clip")
		if !clip.IsClipFile(path) {
			if err := os.MkdirAll(path, 0755); err != nil {
				return fmt.Errorf("create clips directory: %w", err)
			}
			path = clip.GenerateClipPath(path)
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("clip %s already exists", path)
		}

		c := clip.New(name, cfg.FrameRate)
		c.IsLegacy, _ = cmd.Flags().GetBool("legacy")
		if err := clip.WriteClip(c, path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "[+++] Created %s (%g fps)\n", path, c.FrameRate)
		return nil
	}
}

func NewConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  makeConfigRunner(a),
	}

	cmd.Flags().Bool("write", false, "Save the effective configuration to the --config file")
	return cmd
}

func makeConfigRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := a.loadConfig(cmd)
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))

		if write, _ := cmd.Flags().GetBool("write"); write {
			path, _ := cmd.Flags().GetString("config")
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("create config directory: %w", err)
				}
			}
			if err := config.SaveConfig(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+++] Saved %s\n", path)
		}
		return nil
	}
}
