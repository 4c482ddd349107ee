package main

import (
	"encoding/json"
)

// Run executes the stories command.
func (c *StoriesCmd) Run(deps *Dependencies) error {
	stories := deps.Stories.FindStories(deps.Ctx)

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stories)
}
