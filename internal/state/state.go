package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/seabox-dev/seabox/internal/config"
	"github.com/seabox-dev/seabox/internal/errors"
)

// Record describes one container this tool created. Records are
// advisory — the runtime's own label-filtered listing stays the source
// of truth — but they power the picker and `list --local` without a
// runtime round-trip.
type Record struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	ContainerID string `json:"container_id"`
	Rootful     bool   `json:"rootful"`
	CreatedAt   string `json:"created_at"`
}

// NewRecord creates a record stamped with the current time.
func NewRecord(name, image, containerID string, rootful bool) *Record {
	return &Record{
		Name:        name,
		Image:       image,
		ContainerID: containerID,
		Rootful:     rootful,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// Dir returns the box record directory under the platform config dir.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.ConfigError("cannot determine config directory", err)
	}
	return filepath.Join(base, config.AppName, "boxes"), nil
}

// recordPath joins a box name onto dir without letting crafted names
// escape it.
func recordPath(dir, name string) (string, error) {
	path, err := securejoin.SecureJoin(dir, name+".json")
	if err != nil {
		return "", errors.ConfigError("invalid box name: "+name, err)
	}
	return path, nil
}

// Save writes a record. Callers treat failures as warnings: a missing
// record must never abort a container operation.
func Save(dir string, rec *Record) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.ConfigError("cannot create box record directory", err)
	}

	path, err := recordPath(dir, rec.Name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.ConfigError("cannot marshal box record", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ConfigError("cannot write box record", err)
	}
	return nil
}

// Load reads the record for a box name.
func Load(dir, name string) (*Record, error) {
	path, err := recordPath(dir, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("box record not found: "+name, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.ConfigError("cannot parse box record "+name, err)
	}
	return &rec, nil
}

// Delete removes the record for a box name, ignoring absence.
func Delete(dir, name string) error {
	path, err := recordPath(dir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.ConfigError("cannot delete box record", err)
	}
	return nil
}

// List returns all recorded boxes. A missing directory is an empty
// listing; unreadable individual records are skipped.
func List(dir string) ([]*Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.ConfigError("cannot read box record directory", err)
	}

	var records []*Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		rec, err := Load(dir, name)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}
