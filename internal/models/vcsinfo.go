package models

// VcsInfo is the provenance metadata cargo records at publish time in
// .cargo_vcs_info.json. All fields are optional; unknown keys are ignored.
type VcsInfo struct {
	Git       GitInfo `json:"git"`
	PathInVcs string  `json:"path_in_vcs"`
}

// GitInfo records the checkout a package was published from.
type GitInfo struct {
	Sha1 string `json:"sha1"`
}
