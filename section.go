package ministry

// Section is a titled block of content on a static page.
// Content may contain inline HTML and blank-line separated paragraphs.
type Section struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsHighlight bool   `json:"isHighlight,omitempty"`
}
