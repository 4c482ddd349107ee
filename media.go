package ministry

import "context"

// Media kinds accepted by a MediaUploader.
const (
	MediaAudio = "audio"
	MediaImage = "image"
)

// Media describes a file to be published to the media host.
// Exactly one of Data or SourceURL should be set.
type Media struct {
	Kind        string
	Folder      string
	PublicID    string // optional; generated when empty
	Filename    string // used for the file extension
	ContentType string
	Data        []byte
	SourceURL   string
}

// Validate returns an error if the media cannot be uploaded.
func (m *Media) Validate() error {
	if m.Folder == "" {
		return Errorf(EINVALID, "media folder required")
	}
	if len(m.Data) == 0 && m.SourceURL == "" {
		return Errorf(EINVALID, "media data or source URL required")
	}
	return nil
}

// MediaUploader publishes files to durable hosting.
type MediaUploader interface {
	// Upload stores the media and returns its public HTTPS URL.
	Upload(ctx context.Context, m *Media) (url string, err error)
}
