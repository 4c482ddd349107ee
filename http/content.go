package http

import (
	"strconv"

	"github.com/fwojciec/ministry"
	"github.com/gin-gonic/gin"
)

// Public page data.

func (s *Server) handleHome(c *gin.Context) {
	updates, err := s.NewsService.FindNewsUpdates(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	var latest *ministry.NewsUpdate
	if len(updates) > 0 {
		latest = updates[0]
	}
	s.writeJSON(c, gin.H{"latestUpdate": latest})
}

func (s *Server) handleEpisodesPage(c *gin.Context) {
	episodes, err := s.EpisodeService.FindEpisodes(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, gin.H{"episodes": episodes})
}

func (s *Server) handleNewsPage(c *gin.Context) {
	updates, err := s.NewsService.FindNewsUpdates(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, gin.H{"updates": updates})
}

func (s *Server) handleAmevaPage(c *gin.Context) {
	content, err := s.AmevaService.FindAmevaContent(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, gin.H{"amevaContent": content})
}

func (s *Server) handleBookPage(c *gin.Context) {
	content, err := s.BookService.FindBookContent(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, gin.H{"bookContent": content})
}

// handleStoriesPage never fails: the story source degrades to an empty list.
func (s *Server) handleStoriesPage(c *gin.Context) {
	stories := s.StorySource.FindStories(c.Request.Context())
	if stories == nil {
		stories = []*ministry.Episode{}
	}
	s.writeJSON(c, gin.H{"stories": stories})
}

// Admin API.

func (s *Server) handleEpisodeList(c *gin.Context) {
	episodes, err := s.EpisodeService.FindEpisodes(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, episodes)
}

func (s *Server) handleEpisodeReplace(c *gin.Context) {
	var episodes []*ministry.Episode
	if err := c.ShouldBindJSON(&episodes); err != nil {
		s.Error(c, ministry.Errorf(ministry.EINVALID, "Episodes must be an array"))
		return
	}
	if err := s.EpisodeService.ReplaceEpisodes(c.Request.Context(), episodes); err != nil {
		s.Error(c, err)
		return
	}
	s.writeSuccess(c, nil)
}

// handleEpisodeEdit loads one episode for editing. An index past the end
// yields a null episode so the form starts empty.
func (s *Server) handleEpisodeEdit(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		s.Error(c, err)
		return
	}
	episodes, err := s.EpisodeService.FindEpisodes(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	var episode *ministry.Episode
	if index < len(episodes) {
		episode = episodes[index]
	}
	s.writeJSON(c, gin.H{"episode": episode, "index": index})
}

func (s *Server) handleNewsList(c *gin.Context) {
	updates, err := s.NewsService.FindNewsUpdates(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, updates)
}

func (s *Server) handleNewsReplace(c *gin.Context) {
	var updates []*ministry.NewsUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		s.Error(c, ministry.Errorf(ministry.EINVALID, "News updates must be an array"))
		return
	}
	if err := s.NewsService.ReplaceNewsUpdates(c.Request.Context(), updates); err != nil {
		s.Error(c, err)
		return
	}
	s.writeSuccess(c, nil)
}

func (s *Server) handleNewsEdit(c *gin.Context) {
	index, err := parseIndex(c)
	if err != nil {
		s.Error(c, err)
		return
	}
	updates, err := s.NewsService.FindNewsUpdates(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	var update *ministry.NewsUpdate
	if index < len(updates) {
		update = updates[index]
	}
	s.writeJSON(c, gin.H{"update": update, "index": index})
}

func (s *Server) handleAmevaGet(c *gin.Context) {
	content, err := s.AmevaService.FindAmevaContent(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, content)
}

func (s *Server) handleAmevaSave(c *gin.Context) {
	var content ministry.AmevaContent
	if err := c.ShouldBindJSON(&content); err != nil {
		s.Error(c, ministry.Errorf(ministry.EINVALID, "Invalid Ameva content"))
		return
	}
	if content.Sections == nil {
		content.Sections = []ministry.Section{}
	}
	if err := s.AmevaService.SaveAmevaContent(c.Request.Context(), &content); err != nil {
		s.Error(c, err)
		return
	}
	s.writeSuccess(c, nil)
}

func (s *Server) handleBookGet(c *gin.Context) {
	content, err := s.BookService.FindBookContent(c.Request.Context())
	if err != nil {
		s.Error(c, err)
		return
	}
	s.writeJSON(c, content)
}

func (s *Server) handleBookSave(c *gin.Context) {
	var content ministry.BookContent
	if err := c.ShouldBindJSON(&content); err != nil {
		s.Error(c, ministry.Errorf(ministry.EINVALID, "Invalid book content"))
		return
	}
	if content.Sections == nil {
		content.Sections = []ministry.Section{}
	}
	if err := s.BookService.SaveBookContent(c.Request.Context(), &content); err != nil {
		s.Error(c, err)
		return
	}
	s.writeSuccess(c, nil)
}

func parseIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, ministry.Errorf(ministry.EINVALID, "Invalid index")
	}
	return index, nil
}
