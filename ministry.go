// Package ministry provides the backend for a small ministry and podcast
// website: episodes, news, static content pages, an image carousel, and a
// list of story recordings scraped from a partner radio station's page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, gin-backed http/).
package ministry
