package domain

// Attachment is embedded verbatim in its owning record. The name is the
// original filename shown to readers; the url points at the stored object.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}
