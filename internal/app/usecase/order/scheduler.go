package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/orderline/go-order-system/internal/app/config"
)

type PendingPromoter interface {
	PromotePendingToProcessing(ctx context.Context) (int, error)
}

// StatusPromoter triggers the pending-order sweep on a fixed period.
// Runs execute on a single goroutine, so a run that outlives the
// period delays the next trigger instead of overlapping it.
type StatusPromoter struct {
	promoter PendingPromoter
	interval time.Duration
	done     chan struct{}
}

func CreateStatusPromoter(promoter PendingPromoter, config config.Config) *StatusPromoter {
	return &StatusPromoter{
		promoter: promoter,
		interval: config.PromoteInterval,
		done:     make(chan struct{}),
	}
}

func (p *StatusPromoter) Start() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	zap.L().Info("status promoter started", zap.Duration("interval", p.interval))

	for {
		select {
		case <-p.done:
			zap.L().Info("status promoter work has finished")
			return
		case <-ticker.C:
			p.promote()
		}
	}
}

func (p *StatusPromoter) Stop() {
	close(p.done)
}

func (p *StatusPromoter) promote() {
	zap.L().Info("starting scheduled order promotion")

	// The sweep runs to completion of the fetched set, no deadline.
	count, err := p.promoter.PromotePendingToProcessing(context.Background())
	if err != nil {
		zap.L().Error("error while promoting pending orders", zap.Error(err))
		return
	}

	zap.L().Info("completed scheduled order promotion", zap.Int("promoted", count))
}
