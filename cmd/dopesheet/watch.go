package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ivlev/dopesheet/internal/curve"
	"github.com/ivlev/dopesheet/internal/hierarchy"
	"github.com/ivlev/dopesheet/internal/source"
	"github.com/ivlev/dopesheet/internal/system"
)

func NewWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the dope sheet when the clip changes",
		Long:  `Watch the clip file and print its hierarchy again after every change.`,
		Args:  cobra.NoArgs,
		RunE:  makeWatchRunner(a),
	}

	cmd.Flags().Duration("debounce", 300*time.Millisecond, "Debounce window for batching changes")
	return cmd
}

func makeWatchRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")

		s, err := a.open(cmd)
		if err != nil {
			return err
		}
		path := a.src.Path()
		out := cmd.OutOrStdout()

		if err := printTree(out, a.src.Name(), s.Tree(), true); err != nil {
			return err
		}

		if n, err := system.RaiseFileLimit(2048); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "[!] %v\n", err)
		} else {
			fmt.Fprintf(out, "[*] Open file limit: %d\n", n)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		// Editors replace files on save, so watch the directory.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		fmt.Fprintf(out, "[*] Watching %s for changes...\n", path)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !isClipEvent(event, path) {
					continue
				}
				if !pending {
					timer.Reset(debounce)
					pending = true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "[!] watch error: %v\n", err)
			case <-timer.C:
				pending = false
				src, err := source.Open(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "[!] reload: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "[*] %s changed\n", filepath.Base(path))
				if err := printTree(out, src.Name(), buildTree(src), true); err != nil {
					return err
				}
			}
		}
	}
}

func isClipEvent(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func buildTree(src source.Source) *hierarchy.Node {
	curves := make([]*curve.Curve, 0)
	for _, b := range src.Bindings() {
		if keys, ok := src.Keyframes(b); ok {
			curves = append(curves, curve.New(b, keys...))
		}
	}
	return hierarchy.Build(curves)
}
