// pkg/api/manifest_v1.go
package api

// ManifestV1 is the stable JSON schema of a hamark run manifest.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ManifestV1 struct {
	RunID     string     `json:"run_id"`
	CreatedAt string     `json:"created_at"` // RFC 3339, UTC
	Version   string     `json:"version"`
	Backend   string     `json:"backend"` // "script" | "pymol"
	Script    string     `json:"script,omitempty"`
	Records   []RecordV1 `json:"records"`
	Failed    int        `json:"failed"`
}

// RecordV1 is one processed sequence.
type RecordV1 struct {
	Name      string   `json:"name"`
	Strain    string   `json:"strain"`
	Protein   string   `json:"protein,omitempty"`
	Structure string   `json:"structure"`
	Clade     string   `json:"clade"`
	Subclade  string   `json:"subclade,omitempty"`
	HA1       []int    `json:"ha1,omitempty"`
	HA2       []int    `json:"ha2,omitempty"`
	Images    []string `json:"images,omitempty"`
	Session   string   `json:"session,omitempty"`
	Notes     []string `json:"notes,omitempty"`
	Error     string   `json:"error,omitempty"`
}
