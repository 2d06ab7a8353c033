package main

import (
	"go.uber.org/fx"

	appfx "github.com/Wisofer/billing-system-sub001/internal/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
