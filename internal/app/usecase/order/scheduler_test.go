package order

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orderline/go-order-system/internal/app/config"
)

type countingPromoter struct {
	calls atomic.Int64
}

func (p *countingPromoter) PromotePendingToProcessing(ctx context.Context) (int, error) {
	p.calls.Add(1)
	return 0, nil
}

type blockingPromoter struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int64
}

func (p *blockingPromoter) PromotePendingToProcessing(ctx context.Context) (int, error) {
	p.calls.Add(1)
	p.started <- struct{}{}
	<-p.release
	return 0, nil
}

func TestStatusPromoterTriggersOnInterval(t *testing.T) {
	promoter := &countingPromoter{}
	scheduler := CreateStatusPromoter(promoter, config.Config{PromoteInterval: 10 * time.Millisecond})

	go scheduler.Start()

	assert.Eventually(t, func() bool {
		return promoter.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	scheduler.Stop()
}

func TestStatusPromoterStops(t *testing.T) {
	promoter := &countingPromoter{}
	scheduler := CreateStatusPromoter(promoter, config.Config{PromoteInterval: 5 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.Start()
	}()

	scheduler.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestStatusPromoterNeverOverlapsRuns(t *testing.T) {
	promoter := &blockingPromoter{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
	scheduler := CreateStatusPromoter(promoter, config.Config{PromoteInterval: 5 * time.Millisecond})

	go scheduler.Start()

	<-promoter.started

	// Several intervals pass while the first run is still in flight.
	// No second run may start until it is released.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), promoter.calls.Load())

	close(promoter.release)

	assert.Eventually(t, func() bool {
		return promoter.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	scheduler.Stop()
}
