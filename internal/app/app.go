package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/miccroten/quoteportal/internal/config"
	"github.com/miccroten/quoteportal/internal/usecase"
	"github.com/miccroten/quoteportal/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newPortalFacade,
		newHTTPServer,
		newCheckoutReconciler,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Accounts   *usecase.AccountUseCase
	Quotations *usecase.QuotationLifecycle
	Pricing    *usecase.PricingEditor
	Payments   *usecase.PaymentOrchestrator
	Files      *usecase.FileAccessBroker
	Contacts   *usecase.ContactUseCase
	Config     *config.Config
}

func newPortalFacade(p facadeParams) *PortalFacade {
	return NewPortalFacade(
		p.Accounts,
		p.Quotations,
		p.Pricing,
		p.Payments,
		p.Files,
		p.Contacts,
		p.Config.SessionMaxAge,
	)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *PortalFacade
	Config *config.Config
	Logger *slog.Logger
}

func newCheckoutReconciler(p workerParams) *worker.CheckoutReconciler {
	return worker.NewCheckoutReconciler(
		p.Facade,
		p.Config.ReconcilePollInterval,
		p.Config.MaxSessionsBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.CheckoutReconciler
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting quoteportal", slog.String("addr", p.Server.Addr))
			// fx cancels the start context as soon as startup completes;
			// the reconciler runs until Stop, so it gets its own context.
			p.Worker.Start(context.Background())
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("quoteportal stopped")
			return nil
		},
	})
}
