package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/ministry"
	"github.com/gin-gonic/gin"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapPage is one public page. Document names the content it renders, if
// any; its update time becomes the page's <lastmod>.
type SitemapPage struct {
	Path     string
	Document string
}

// PublicPages lists the pages of the public site in sitemap order.
var PublicPages = []SitemapPage{
	{Path: "/", Document: ministry.NewsDocument},
	{Path: "/audio", Document: ministry.EpisodesDocument},
	{Path: "/news", Document: ministry.NewsDocument},
	{Path: "/ameva", Document: ministry.AmevaDocument},
	{Path: "/book", Document: ministry.BookDocument},
	{Path: "/stories"},
}

// SitemapURL is a rendered sitemap entry. A zero LastMod is omitted.
type SitemapURL struct {
	Loc     string
	LastMod time.Time
}

// BuildSitemap renders a urlset document with one <url> per entry.
func BuildSitemap(urls []SitemapURL) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)
	for _, u := range urls {
		el := urlset.CreateElement("url")
		el.CreateElement("loc").SetText(u.Loc)
		if !u.LastMod.IsZero() {
			el.CreateElement("lastmod").SetText(u.LastMod.UTC().Format(time.RFC3339))
		}
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

func (s *Server) handleSitemap(c *gin.Context) {
	base := strings.TrimRight(s.baseURL(c), "/")

	urls := make([]SitemapURL, 0, len(PublicPages))
	for _, p := range PublicPages {
		urls = append(urls, SitemapURL{
			Loc:     base + p.Path,
			LastMod: s.lastModified(c.Request.Context(), p.Document),
		})
	}

	body, err := BuildSitemap(urls)
	if err != nil {
		s.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// lastModified returns when document changed, or the zero time when that is
// unknown. Lookup failures are logged and leave the entry without a date.
func (s *Server) lastModified(ctx context.Context, document string) time.Time {
	if s.DocumentHistory == nil || document == "" {
		return time.Time{}
	}
	t, err := s.DocumentHistory.FindUpdatedAt(ctx, document)
	if err != nil {
		if ministry.ErrorCode(err) != ministry.ENOTFOUND {
			s.Logger.Warn("sitemap lastmod lookup failed", "document", document, "err", err)
		}
		return time.Time{}
	}
	return t
}

// baseURL returns the configured public URL, or one derived from the request.
func (s *Server) baseURL(c *gin.Context) string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
