package objectstore

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/miccroten/quoteportal/internal/config"
)

// Module exposes the object store client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(
		p.Config.ObjectStoreAddress,
		p.Config.ObjectStoreKey,
		p.Config.ObjectStoreBucket,
		p.Logger,
	)
}
