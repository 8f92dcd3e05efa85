package config

import (
	"os"
	"path/filepath"
	"time"
)

// FindEnvFile walks from dir up to the filesystem root and returns the first
// path where name exists. An empty name means ".env"; an empty dir means the
// working directory.
func FindEnvFile(name, dir string) (string, error) {
	if name == "" {
		name = ".env"
	}
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// Location resolves the dashboard timezone. An empty name is UTC.
func (d *Dashboard) Location() (*time.Location, error) {
	if d == nil || d.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(d.Timezone)
}
