package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/mailmorph/internal/entity"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

// ActivityRecorder appends events to the activity log. It is also used directly
// as the EventPublisher when no broker is configured.
type ActivityRecorder struct {
	Activity usecase.Collection[entity.ActivityEvent]
}

func NewActivityRecorder(activity usecase.Collection[entity.ActivityEvent]) *ActivityRecorder {
	return &ActivityRecorder{Activity: activity}
}

// Publish records the event, skipping ids already in the log so redeliveries are harmless.
func (r *ActivityRecorder) Publish(ctx context.Context, event entity.ActivityEvent) error {
	return r.Activity.Update(ctx, func(items []entity.ActivityEvent) ([]entity.ActivityEvent, error) {
		for _, existing := range items {
			if event.ID != "" && existing.ID == event.ID {
				return nil, nil
			}
		}
		return append(items, event), nil
	})
}

type Worker struct {
	Channel  *amqp.Channel
	Recorder *ActivityRecorder
}

func NewWorker(ch *amqp.Channel, recorder *ActivityRecorder) *Worker {
	return &Worker{Channel: ch, Recorder: recorder}
}

// Start consumes the activity queue until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(ctx, d.Body); err != nil {
				log.Printf("❌ [WORKER] %v", err)
				// sem requeue: a mensagem vai para a DLQ
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}
}

func (w *Worker) handle(ctx context.Context, body []byte) error {
	var event entity.ActivityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("JSON inválido: %w", err)
	}
	if event.Type == "" {
		return fmt.Errorf("evento sem tipo")
	}

	if err := w.Recorder.Publish(ctx, event); err != nil {
		return fmt.Errorf("falha ao gravar atividade: %w", err)
	}

	log.Printf("📥 [WORKER] %s registrado para %s", event.Type, event.Email)
	return nil
}
