package usecase

import (
	"context"

	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/infra/queue"
)

// ProductRepositoryInterface is satisfied by both the Supabase REST client
// and the direct Postgres repository. Killed records never come back from
// any of these methods.
type ProductRepositoryInterface interface {
	ListActive(ctx context.Context) ([]entity.Experiment, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Experiment, error)
	FindIDBySlug(ctx context.Context, slug string) (int64, error)
}

type QueueProducerInterface interface {
	PublishSignup(ctx context.Context, payload queue.SignupPayload) error
}
