package bootstrap

import (
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/gateway"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/config"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewGatewayClient,
			fx.As(new(gateway.Client)),
		),
	),
)

func NewGatewayClient(cfg config.Config) *gateway.HTTPClient {
	return gateway.NewHTTPClient(cfg.Gateway)
}
