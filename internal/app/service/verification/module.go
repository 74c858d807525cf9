package verification

import "go.uber.org/fx"

// Module exposes the receipt checking service via Fx.
var Module = fx.Options(
	fx.Provide(NewReceiptVerifier),
	fx.Provide(NewService),
)
