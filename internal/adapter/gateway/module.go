package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/miccroten/quoteportal/internal/config"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(
		p.Config.GatewayBaseURL,
		p.Config.GatewayKeyID,
		p.Config.GatewayKeySecret,
		p.Config.GatewayWebhookSecret,
		p.Logger,
	)
}
