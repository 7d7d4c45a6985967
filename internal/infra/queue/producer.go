package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/grapl-ai/grapl-site/internal/entity"
)

// SignupPayload is the event published for every first-time signup.
// Duplicates never reach the queue, so the welcome worker cannot mail the
// same address twice.
type SignupPayload struct {
	EventID     string    `json:"event_id"`
	Email       string    `json:"email"`
	ProductID   *int64    `json:"product_id"`
	Source      string    `json:"source"`
	SignedUpAt  time.Time `json:"signed_up_at"`
	Referrer    *string   `json:"referrer"`
	UTMSource   *string   `json:"utm_source"`
	UTMMedium   *string   `json:"utm_medium"`
	UTMCampaign *string   `json:"utm_campaign"`
}

func NewSignupPayload(lead *entity.Lead) SignupPayload {
	return SignupPayload{
		EventID:     uuid.New().String(),
		Email:       lead.Email,
		ProductID:   lead.ProductID,
		Source:      lead.Source,
		SignedUpAt:  time.Now().UTC(),
		Referrer:    lead.Referrer,
		UTMSource:   lead.UTMSource,
		UTMMedium:   lead.UTMMedium,
		UTMCampaign: lead.UTMCampaign,
	}
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishSignup(ctx context.Context, payload SignupPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal signup payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish signup event: %w", err)
	}
	return nil
}
