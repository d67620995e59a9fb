package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/mailmorph/internal/entity"
)

// publish never fails the caller: broker problems are only logged.
func publish(ctx context.Context, events EventPublisher, event entity.ActivityEvent) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		log.Printf("⚠️ [EVENTS] falha ao publicar %s de %s: %v", event.Type, event.Email, err)
	}
}
