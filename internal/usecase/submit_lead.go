package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/infra/queue"
)

const confirmationMessage = "You're on the list!"

type SubmitLeadUseCase struct {
	Products ProductRepositoryInterface
	Leads    entity.LeadRepositoryInterface
	Queue    QueueProducerInterface // optional, nil when no broker is configured
	Log      *zap.SugaredLogger

	// Configured is false when the store credentials were missing at
	// startup. Every request then fails fast instead of attempting a
	// backend call that cannot succeed.
	Configured bool
}

func NewSubmitLeadUseCase(
	products ProductRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	producer QueueProducerInterface,
	log *zap.SugaredLogger,
	configured bool,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		Products:   products,
		Leads:      leads,
		Queue:      producer,
		Log:        log,
		Configured: configured,
	}
}

// Execute validates and normalizes a signup, resolves the optional product
// slug and upserts the lead. At most one read and one write hit the backend
// store; validation failures write nothing. A duplicate email resolves to
// the same confirmation as a first signup.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, req SubmitLeadRequest) (*SubmitLeadOutput, error) {
	if !uc.Configured {
		return nil, &TechnicalError{Code: CodeServerMisconfigured, Message: "Server configuration error"}
	}

	rawEmail, ok := req.Email.(string)
	if !ok {
		return nil, errInvalidEmail()
	}
	email, ok := NormalizeEmail(rawEmail)
	if !ok {
		return nil, errInvalidEmail()
	}

	lead := &entity.Lead{
		Email:       email,
		Source:      entity.LeadSourceWaitlist,
		Referrer:    OptionalField(req.Referrer, MaxReferrerLen),
		UTMSource:   OptionalField(req.UTMSource, MaxUTMSourceLen),
		UTMMedium:   OptionalField(req.UTMMedium, MaxUTMMediumLen),
		UTMCampaign: OptionalField(req.UTMCampaign, MaxUTMCampaignLen),
	}

	product := OptionalField(req.Product, MaxProductLen)
	if product != nil {
		id, err := uc.Products.FindIDBySlug(ctx, *product)
		if err != nil {
			// Non-fatal: the signup still counts without attribution.
			uc.Log.Warnw("product lookup failed, storing lead without product",
				"slug", *product, "error", err)
		} else {
			lead.ProductID = &id
		}
	}

	err := uc.Leads.Upsert(ctx, lead)
	duplicate := errors.Is(err, entity.ErrDuplicateEmail)
	if err != nil && !duplicate {
		uc.Log.Errorw("lead insert failed", "error", err)
		return nil, &TechnicalError{Code: CodeUpstreamWriteFailed, Message: "Failed to save signup"}
	}

	if !duplicate && uc.Queue != nil {
		payload := queue.NewSignupPayload(lead)
		if err := uc.Queue.PublishSignup(ctx, payload); err != nil {
			uc.Log.Warnw("signup event publish failed", "error", err)
		}
	}

	return &SubmitLeadOutput{Success: true, Message: confirmationMessage}, nil
}
