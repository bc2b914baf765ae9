package models

// ObjectInfo describes a stored binary object. There is no relational row for
// objects; the object store is the source of truth and this is the metadata
// shape surfaced to clients.
type ObjectInfo struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ETag        string `json:"etag"`
	VersionID   string `json:"versionId,omitempty"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	URL         string `json:"url,omitempty"`
}
