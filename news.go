package ministry

import "context"

// NewsUpdate represents a dated news post. Content may contain inline HTML.
type NewsUpdate struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate returns an error if the update contains invalid fields.
func (u *NewsUpdate) Validate() error {
	if u.Title == "" {
		return Errorf(EINVALID, "news title required")
	}
	return nil
}

// NewsService represents a service for managing news updates.
type NewsService interface {
	// FindNewsUpdates returns all updates, newest first as stored.
	FindNewsUpdates(ctx context.Context) ([]*NewsUpdate, error)

	// ReplaceNewsUpdates overwrites the full list of updates.
	ReplaceNewsUpdates(ctx context.Context, updates []*NewsUpdate) error
}
