package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/dopesheet/internal/config"
	"github.com/ivlev/dopesheet/internal/curve"
	"github.com/ivlev/dopesheet/internal/engine"
	"github.com/ivlev/dopesheet/internal/source"
)

// app holds what one invocation opened
type app struct {
	cfg     *config.Config
	src     *source.ClipSource
	session *engine.Session
	history *engine.History
	started time.Time
}

func newApp() *app {
	return &app{}
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if fps, _ := cmd.Flags().GetFloat64("fps"); fps > 0 {
		cfg.FrameRate = fps
	}
	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		cfg.ShowStats = true
	}

	a.cfg = cfg
	return cfg, nil
}

// open loads the clip named by --clip into an editing session
func (a *app) open(cmd *cobra.Command) (*engine.Session, error) {
	if a.session != nil {
		return a.session, nil
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("clip")
	src, err := source.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clip: %w", err)
	}

	s, err := engine.NewSession(cfg, src)
	if err != nil {
		return nil, err
	}

	a.history = engine.NewHistory(0)
	s.SetRecorder(a.history)
	a.src, a.session = src, s
	return s, nil
}

// save writes pending edits back to the clip file
func (a *app) save(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if a.src == nil || !a.src.Dirty() {
		fmt.Fprintln(out, "[*] No changes.")
		return nil
	}

	for _, cp := range a.history.Checkpoints() {
		fmt.Fprintf(out, "[+++] %s %s (%d curves)\n", cp.ID, cp.Label, len(cp.After))
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		fmt.Fprintln(out, "[*] Dry run, clip not written.")
		return nil
	}
	if err := a.src.Save(); err != nil {
		return fmt.Errorf("save clip: %w", err)
	}
	fmt.Fprintf(out, "[+++] Saved %s\n", a.src.Path())
	return nil
}

// parseBinding reads "path:Type.property"; "<root>" or an empty path
// addresses the clip root.
func parseBinding(s string, pptr bool) (curve.Binding, error) {
	path, rest, ok := strings.Cut(s, ":")
	if !ok {
		return curve.Binding{}, fmt.Errorf("binding %q: want path:Type.property", s)
	}
	typ, prop, ok := strings.Cut(rest, ".")
	if !ok || typ == "" || prop == "" {
		return curve.Binding{}, fmt.Errorf("binding %q: want path:Type.property", s)
	}
	if path == "<root>" {
		path = ""
	}
	return curve.Binding{Path: path, Type: typ, PropertyName: prop, IsPPtrCurve: pptr}, nil
}

// resolveBinding matches an argument against the session's curves so the
// reference flag need not be repeated.
func resolveBinding(s *engine.Session, arg string) (curve.Binding, error) {
	b, err := parseBinding(arg, false)
	if err != nil {
		return b, err
	}
	if _, ok := s.Store().Curve(b); ok {
		return b, nil
	}
	b.IsPPtrCurve = true
	if _, ok := s.Store().Curve(b); ok {
		return b, nil
	}
	b.IsPPtrCurve = false
	return b, nil
}

func parseSeconds(arg string) (float64, error) {
	t, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", arg, err)
	}
	return t, nil
}
