package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version"`
	Device  deviceSchema `toml:"device"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported device schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type deviceSchema struct {
	ID        string `toml:"id"`
	Signature string `toml:"signature,omitempty"`
	UserAgent string `toml:"user_agent"`
	CreatedAt string `toml:"created_at,omitempty"`
}
