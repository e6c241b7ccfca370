package models

// AudioArtifact is a materialized audio file with a known duration.
type AudioArtifact struct {
	Path            string  `json:"path"`
	DurationSeconds float64 `json:"duration_seconds"`
	MIMEType        string  `json:"mime_type"`
}
