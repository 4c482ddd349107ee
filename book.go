package ministry

import "context"

// BookContent is the editable content of the book page.
type BookContent struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle,omitempty"`
	Intro       string    `json:"intro"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PurchaseURL string    `json:"purchaseUrl,omitempty"`
	Sections    []Section `json:"sections"`
}

// BookService represents a service for managing the book page.
type BookService interface {
	// FindBookContent returns the stored content, or DefaultBookContent
	// if none has been saved.
	FindBookContent(ctx context.Context) (*BookContent, error)

	// SaveBookContent overwrites the stored content.
	SaveBookContent(ctx context.Context, content *BookContent) error
}

// DefaultBookContent returns the content shown before anything is edited.
func DefaultBookContent() *BookContent {
	return &BookContent{
		Title:    "The Book",
		Intro:    "Details of the book will be available here soon.",
		Sections: []Section{},
	}
}
