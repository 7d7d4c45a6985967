package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// WelcomeMailer is the contract for whatever sends the welcome email.
type WelcomeMailer interface {
	SendWelcome(to string) error
}

// Worker drains the signup queue and sends welcome emails. It is fully
// decoupled from the store: everything it needs rides in the payload.
type Worker struct {
	Channel *amqp.Channel
	Mailer  WelcomeMailer
	Log     *zap.SugaredLogger
}

func NewWorker(ch *amqp.Channel, mailer WelcomeMailer, log *zap.SugaredLogger) *Worker {
	return &Worker{Channel: ch, Mailer: mailer, Log: log}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		w.Log.Fatalw("failed to register signup consumer", "error", err)
	}

	for d := range msgs {
		var payload SignupPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			w.Log.Errorw("dropping malformed signup event", "error", err)
			// No requeue: a rotten message would block the queue.
			d.Nack(false, false)
			continue
		}

		w.Log.Infow("sending welcome email", "event_id", payload.EventID)

		if err := w.Mailer.SendWelcome(payload.Email); err != nil {
			w.Log.Errorw("welcome email failed", "event_id", payload.EventID, "error", err)
			d.Nack(false, false)
			continue
		}

		d.Ack(false)
	}
}
