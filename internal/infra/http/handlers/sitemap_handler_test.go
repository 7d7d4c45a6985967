package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/usecase"
)

func newSEO(products *MockProductRepository, policy usecase.FallbackPolicy) *SEOHandler {
	catalog := usecase.NewCatalogReader(products, policy, zap.NewNop().Sugar())
	return NewSEOHandler(catalog, "https://grapl.ai")
}

func TestSitemapListsRootAndExperiments(t *testing.T) {
	products := new(MockProductRepository)
	products.On("ListActive", mock.Anything).Return([]entity.Experiment{
		{Slug: "quotemate", RawStatus: "beta"},
		{Slug: "inbox-pilot", RawStatus: "planned"},
	}, nil)

	rec := httptest.NewRecorder()
	newSEO(products, usecase.FallbackEmpty).HandleSitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://grapl.ai</loc>")
	assert.Contains(t, body, "<loc>https://grapl.ai/quotemate</loc>")
	assert.Contains(t, body, "<loc>https://grapl.ai/inbox-pilot</loc>")
	assert.Contains(t, body, "<changefreq>weekly</changefreq>")
	assert.Contains(t, body, "<priority>0.8</priority>")
}

func TestSitemapSurvivesStoreOutage(t *testing.T) {
	products := new(MockProductRepository)
	products.On("ListActive", mock.Anything).Return(nil, errors.New("connection refused"))

	rec := httptest.NewRecorder()
	newSEO(products, usecase.FallbackStatic).HandleSitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Fallback set keeps static generation producing valid pages.
	assert.Contains(t, rec.Body.String(), "<loc>https://grapl.ai/quotemate</loc>")
}

func TestRobots(t *testing.T) {
	rec := httptest.NewRecorder()
	newSEO(new(MockProductRepository), usecase.FallbackEmpty).HandleRobots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User-agent: *")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://grapl.ai/sitemap.xml")
}
