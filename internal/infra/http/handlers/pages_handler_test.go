package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/usecase"
)

func newPagesRouter(products *MockProductRepository, policy usecase.FallbackPolicy) *chi.Mux {
	catalog := usecase.NewCatalogReader(products, policy, zap.NewNop().Sugar())
	h := NewPagesHandler(catalog, zap.NewNop().Sugar())

	r := chi.NewRouter()
	r.Get("/", h.HandleHome)
	r.Get("/privacy", h.HandlePrivacy)
	r.Get("/{slug}", h.HandleExperiment)
	return r
}

func TestHomeRendersExperimentGrid(t *testing.T) {
	products := new(MockProductRepository)
	products.On("ListActive", mock.Anything).Return([]entity.Experiment{
		{Slug: "quotemate", Name: "QuoteMate", Tagline: "Quotes in minutes", Category: "Trades", RawStatus: "beta"},
	}, nil)

	rec := httptest.NewRecorder()
	newPagesRouter(products, usecase.FallbackEmpty).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "QuoteMate")
	assert.Contains(t, body, `href="/quotemate"`)
	assert.Contains(t, body, "Beta")
}

func TestHomeRendersEmptyState(t *testing.T) {
	products := new(MockProductRepository)
	products.On("ListActive", mock.Anything).Return([]entity.Experiment{}, nil)

	rec := httptest.NewRecorder()
	newPagesRouter(products, usecase.FallbackEmpty).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No experiments to show")
}

func TestExperimentDetailPage(t *testing.T) {
	products := new(MockProductRepository)
	products.On("FindBySlug", mock.Anything, "quotemate").Return(&entity.Experiment{
		Slug: "quotemate", Name: "QuoteMate", Tagline: "Quotes in minutes",
		Description: "Itemised quotes from a plain-words job description.",
		Category:    "Trades", RawStatus: "live",
	}, nil)

	rec := httptest.NewRecorder()
	newPagesRouter(products, usecase.FallbackEmpty).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quotemate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "QuoteMate")
	assert.Contains(t, body, "Beta") // live renders as beta
	assert.Contains(t, body, `data-product="quotemate"`)
}

func TestExperimentDetailNotFound(t *testing.T) {
	products := new(MockProductRepository)
	products.On("FindBySlug", mock.Anything, "nope").Return(nil, entity.ErrNotFound)

	rec := httptest.NewRecorder()
	newPagesRouter(products, usecase.FallbackEmpty).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestPrivacyPage(t *testing.T) {
	rec := httptest.NewRecorder()
	newPagesRouter(new(MockProductRepository), usecase.FallbackEmpty).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/privacy", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Privacy")
}
