package clip

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Marshal encodes a clip as YAML
func Marshal(c *Clip) ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteClip writes a clip to a YAML file
func WriteClip(c *Clip, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal clip: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ReadClip reads a clip from a YAML file
func ReadClip(path string) (*Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Clip
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse clip %s: %w", path, err)
	}
	if c.Version == "" {
		c.Version = CurrentVersion
	}

	return &c, nil
}
