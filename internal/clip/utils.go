package clip

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// GenerateClipPath creates a timestamped clip filename inside dir
func GenerateClipPath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("clip_%s.yaml", timestamp))
}

// IsClipFile reports whether a path looks like a clip document
func IsClipFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ListClips returns every clip file in dir, sorted by name
func ListClips(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read clips directory: %w", err)
	}

	var clips []string
	for _, entry := range entries {
		if !entry.IsDir() && IsClipFile(entry.Name()) {
			clips = append(clips, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(clips)

	return clips, nil
}

// FindLatestClip finds the most recently modified clip file in dir
func FindLatestClip(dir string) (string, error) {
	clips, err := ListClips(dir)
	if err != nil {
		return "", err
	}

	if len(clips) == 0 {
		return "", fmt.Errorf("no clip files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.SliceStable(clips, func(i, j int) bool {
		infoI, _ := os.Stat(clips[i])
		infoJ, _ := os.Stat(clips[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return clips[0], nil
}

// LoadClips reads several clip files concurrently. Results keep the order
// of paths; the first failure cancels the remaining reads.
func LoadClips(ctx context.Context, paths []string) ([]*Clip, error) {
	clips := make([]*Clip, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := ReadClip(path)
			if err != nil {
				return fmt.Errorf("load clip %s: %w", path, err)
			}
			clips[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return clips, nil
}
