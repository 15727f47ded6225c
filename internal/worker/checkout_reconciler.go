package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/miccroten/quoteportal/internal/domain/errors"
	"github.com/miccroten/quoteportal/internal/domain/model"
)

// CheckoutFacade exposes the subset of application functionality required by
// the reconciler.
type CheckoutFacade interface {
	PendingCheckoutSessions(ctx context.Context, limit int) ([]model.CheckoutSession, error)
	ReconcileCheckoutSession(ctx context.Context, session model.CheckoutSession) error
}

// CheckoutReconciler re-checks pending gateway orders whose completion
// callback may never have arrived and settles or abandons them concurrently.
type CheckoutReconciler struct {
	facade       CheckoutFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.CheckoutSession
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewCheckoutReconciler constructs the reconciler worker pool.
func NewCheckoutReconciler(facade CheckoutFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *CheckoutReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &CheckoutReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.CheckoutSession, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (r *CheckoutReconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *CheckoutReconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *CheckoutReconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *CheckoutReconciler) fetchAndDispatch(ctx context.Context) {
	sessions, err := r.facade.PendingCheckoutSessions(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch pending checkout sessions failed", slog.String("error", err.Error()))
		return
	}
	for _, session := range sessions {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- session:
		}
	}
}

func (r *CheckoutReconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case session, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleSession(ctx, session)
		}
	}
}

func (r *CheckoutReconciler) handleSession(ctx context.Context, session model.CheckoutSession) {
	if err := r.facade.ReconcileCheckoutSession(ctx, session); err != nil {
		if errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
			// gateway hiccup; the session stays pending for the next pass
			r.logger.Warn("gateway unavailable during reconciliation",
				slog.String("order", session.GatewayOrderID))
			return
		}
		r.logger.Error("checkout session reconciliation failed",
			slog.String("order", session.GatewayOrderID),
			slog.String("error", err.Error()))
	}
}
