package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/crateworks/ingest/internal/models"
)

// Parse decodes raw Cargo.toml bytes into a Manifest without applying any
// publish-time validation. Legacy archives are read through this path alone;
// new uploads run Validate afterwards.
func Parse(data []byte) (*models.Manifest, error) {
	var m models.Manifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
