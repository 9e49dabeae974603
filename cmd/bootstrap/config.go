package bootstrap

import (
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
