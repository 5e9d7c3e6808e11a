package tarball

import (
	"encoding/json"

	"github.com/crateworks/ingest/internal/models"
)

// parseVcsInfo decodes .cargo_vcs_info.json tolerantly: unknown keys are
// ignored, missing keys default, and a document that fails to decode yields
// no provenance at all. Provenance is best-effort and never fails the
// pipeline.
func parseVcsInfo(data []byte) *models.VcsInfo {
	var info models.VcsInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil
	}
	return &info
}
