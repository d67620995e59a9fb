package worker

import (
	"context"
	"log"
	"time"
)

type ReplySyncer interface {
	Execute(ctx context.Context) (int, error)
}

// ReplySyncWorker polls the mailbox for inbound replies on a fixed interval.
type ReplySyncWorker struct {
	syncer       ReplySyncer
	tickInterval time.Duration
}

func NewReplySyncWorker(syncer ReplySyncer, interval time.Duration) *ReplySyncWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &ReplySyncWorker{syncer: syncer, tickInterval: interval}
}

// Start runs one sync immediately and then one per tick until ctx is done.
func (w *ReplySyncWorker) Start(ctx context.Context) {
	log.Printf("🕒 Worker de sync de respostas iniciado (a cada %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sync(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Worker de sync de respostas encerrado")
			return
		case <-ticker.C:
			w.sync(ctx)
		}
	}
}

func (w *ReplySyncWorker) sync(ctx context.Context) {
	n, err := w.syncer.Execute(ctx)
	if err != nil {
		log.Printf("❌ Erro ao sincronizar respostas: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ %d nova(s) resposta(s) sincronizada(s)", n)
	}
}
