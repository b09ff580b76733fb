// Package identity manages the durable anonymous session identifier.
// The id is created lazily on first use and reused for every later run,
// so submitted rankings from one machine aggregate under one session.
package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// defaultPath returns the session-id file location under the user config dir.
func defaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "shape-rank", "session-id"), nil
}

// Load returns the persisted session id, creating and persisting a new one
// if none exists yet. An empty path selects the default location.
func Load(path string) (string, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return "", err
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err == nil {
		id := strings.TrimSpace(string(data))
		if _, parseErr := uuid.Parse(id); parseErr == nil {
			return id, nil
		}
		// Corrupt file, fall through and regenerate.
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("could not read session id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("could not create session dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0600); err != nil {
		return "", fmt.Errorf("could not persist session id: %w", err)
	}
	return id, nil
}
