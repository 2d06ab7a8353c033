package fx

import (
	"go.uber.org/fx"

	"github.com/Wisofer/billing-system-sub001/config"
	"github.com/Wisofer/billing-system-sub001/internal/middleware"
)

var MiddlewareModule = fx.Module("middleware",
	fx.Provide(
		newJwtService,
	),
)

func newJwtService(cfg *config.Config) *middleware.JwtService {
	return middleware.NewJwtService(cfg)
}
