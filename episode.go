package ministry

import "context"

// Episode represents a single audio recording shown on the site.
// Stories scraped from the partner station share this shape.
type Episode struct {
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	AudioURL    string `json:"audioUrl"`
	Duration    string `json:"duration,omitempty"`
}

// Validate returns an error if the episode contains invalid fields.
func (e *Episode) Validate() error {
	if e.Title == "" {
		return Errorf(EINVALID, "episode title required")
	}
	if e.AudioURL == "" {
		return Errorf(EINVALID, "episode audio URL required")
	}
	return nil
}

// EpisodeService represents a service for managing the episode list.
type EpisodeService interface {
	// FindEpisodes returns all episodes in display order.
	// Returns an empty slice if no episodes have been saved.
	FindEpisodes(ctx context.Context) ([]*Episode, error)

	// ReplaceEpisodes overwrites the full episode list.
	ReplaceEpisodes(ctx context.Context, episodes []*Episode) error
}

// StorySource provides story recordings discovered on an external page.
type StorySource interface {
	// FindStories returns the current stories. It never fails: any problem
	// reaching or reading the external page yields an empty slice.
	FindStories(ctx context.Context) []*Episode
}

// DedupeEpisodesByTitle removes episodes whose title equals the title of an
// earlier episode. Comparison is exact and case-sensitive; the first
// occurrence is kept and relative order is preserved.
func DedupeEpisodesByTitle(episodes []*Episode) []*Episode {
	seen := make(map[string]struct{}, len(episodes))
	result := make([]*Episode, 0, len(episodes))
	for _, ep := range episodes {
		if _, ok := seen[ep.Title]; ok {
			continue
		}
		seen[ep.Title] = struct{}{}
		result = append(result, ep)
	}
	return result
}
