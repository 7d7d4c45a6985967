package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/grapl-ai/grapl-site/internal/usecase"
)

// SEOHandler serves sitemap.xml and robots.txt. The sitemap enumerates the
// root plus one entry per non-killed experiment, so a killed product drops
// out of search the same way it drops off the grid.
type SEOHandler struct {
	Catalog *usecase.CatalogReader
	BaseURL string
}

func NewSEOHandler(catalog *usecase.CatalogReader, baseURL string) *SEOHandler {
	return &SEOHandler{Catalog: catalog, BaseURL: baseURL}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (h *SEOHandler) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	lastMod := time.Now().Format("2006-01-02")

	urlSet := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: h.BaseURL, LastMod: lastMod, ChangeFreq: "weekly", Priority: "1.0"},
		},
	}

	for _, e := range h.Catalog.List(r.Context()) {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/%s", h.BaseURL, e.Slug),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write([]byte(xml.Header))
	xml.NewEncoder(w).Encode(urlSet)
}

func (h *SEOHandler) HandleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", h.BaseURL)
}
