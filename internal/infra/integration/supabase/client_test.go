package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/infra/queue"
	"github.com/grapl-ai/grapl-site/internal/usecase"
)

func TestFindIDBySlug(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/products", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "id", q.Get("select"))
		assert.Equal(t, "eq.quotemate", q.Get("slug"))
		assert.Equal(t, "neq.killed", q.Get("status"))

		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	id, err := client.FindIDBySlug(context.Background(), "quotemate")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestFindIDBySlugNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	_, err := client.FindIDBySlug(context.Background(), "nope")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestListActive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "neq.killed", q.Get("status"))
		assert.Equal(t, "created_at.desc", q.Get("order"))

		w.Write([]byte(`[
			{"id":2,"slug":"inbox-pilot","name":"InboxPilot","tagline":"t","description":"d","category":"Email","vertical":"Solo","tags":["email"],"status":"development","traction_score":null,"waitlist_count":12,"created_at":"2025-01-18T00:00:00+00:00","pricing_model":null,"url":null},
			{"id":1,"slug":"quotemate","name":"QuoteMate","tagline":"t","description":"d","category":"Trades","vertical":"Trades","tags":null,"status":"beta","traction_score":40,"waitlist_count":null,"created_at":"2024-11-09T00:00:00+00:00","pricing_model":"freemium","url":"https://quotemate.grapl.ai"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	rows, err := client.ListActive(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "inbox-pilot", rows[0].Slug)
		assert.Equal(t, "development", rows[0].RawStatus)
		if assert.NotNil(t, rows[0].WaitlistCount) {
			assert.Equal(t, 12, *rows[0].WaitlistCount)
		}
		assert.Nil(t, rows[0].TractionScore)

		assert.Equal(t, "freemium", rows[1].PricingModel)
		assert.Equal(t, "https://quotemate.grapl.ai", rows[1].URL)
	}
}

func TestUpsertSendsExplicitNulls(t *testing.T) {
	var captured map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/leads", r.URL.Path)
		assert.Contains(t, r.Header.Get("Prefer"), "resolution=ignore-duplicates")
		assert.Contains(t, r.Header.Get("Prefer"), "return=representation")

		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &captured))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":1,"email":"a@example.com"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	err := client.Upsert(context.Background(), &entity.Lead{
		Email:  "a@example.com",
		Source: entity.LeadSourceWaitlist,
	})

	assert.NoError(t, err)
	// Absent optional fields must be present as nulls, not omitted.
	for _, key := range []string{"product_id", "referrer", "utm_source", "utm_medium", "utm_campaign"} {
		raw, ok := captured[key]
		if assert.True(t, ok, "key %q missing from insert payload", key) {
			assert.Equal(t, "null", string(raw))
		}
	}
	assert.Equal(t, `"a@example.com"`, string(captured["email"]))
	assert.Equal(t, `"waitlist"`, string(captured["source"]))
}

func TestUpsertSkippedDuplicate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ignore-duplicates: the insert succeeds but the row was skipped.
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	err := client.Upsert(context.Background(), &entity.Lead{Email: "a@example.com"})

	assert.ErrorIs(t, err, entity.ErrDuplicateEmail)
}

func TestUpsertConflictMapsToDuplicate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	err := client.Upsert(context.Background(), &entity.Lead{Email: "a@example.com"})

	assert.ErrorIs(t, err, entity.ErrDuplicateEmail)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishSignup(ctx context.Context, payload queue.SignupPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func TestRepeatSignupPublishesOneEvent(t *testing.T) {
	var inserts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Write([]byte(`[]`))
			return
		}
		inserts++
		w.WriteHeader(http.StatusCreated)
		if inserts == 1 {
			w.Write([]byte(`[{"id":1,"email":"user@example.com"}]`))
		} else {
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	producer := new(MockQueueProducer)
	producer.On("PublishSignup", mock.Anything, mock.Anything).Return(nil)

	client := NewClient(server.URL, "service-key")
	uc := usecase.NewSubmitLeadUseCase(client, client, producer, zap.NewNop().Sugar(), true)

	for i := 0; i < 2; i++ {
		output, err := uc.Execute(context.Background(), usecase.SubmitLeadRequest{Email: "user@example.com"})
		assert.NoError(t, err)
		assert.True(t, output.Success)
	}

	assert.Equal(t, 2, inserts)
	// The second submission was skipped server-side and must not re-fire
	// the welcome event.
	producer.AssertNumberOfCalls(t, "PublishSignup", 1)
}

func TestUpsertRejectedIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	err := client.Upsert(context.Background(), &entity.Lead{Email: "a@example.com"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrDuplicateEmail)
}
