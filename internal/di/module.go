package di

import (
	"go.uber.org/fx"

	"github.com/miccroten/quoteportal/internal/adapter/gateway"
	"github.com/miccroten/quoteportal/internal/adapter/objectstore"
	"github.com/miccroten/quoteportal/internal/app"
	"github.com/miccroten/quoteportal/internal/config"
	"github.com/miccroten/quoteportal/internal/logger"
	"github.com/miccroten/quoteportal/internal/pkg/auth"
	"github.com/miccroten/quoteportal/internal/server/http/handlers"
	"github.com/miccroten/quoteportal/internal/server/http/router"
	"github.com/miccroten/quoteportal/internal/storage/postgres"
	"github.com/miccroten/quoteportal/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		objectstore.Module,
		usecase.Module,
		fx.Provide(func(client gateway.Client) usecase.PaymentGateway { return client }),
		fx.Provide(func(client objectstore.Client) usecase.ObjectStore { return client }),
		fx.Provide(func(facade *app.PortalFacade) handlers.PortalFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
