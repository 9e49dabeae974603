package components

import (
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/api"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewListingHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
