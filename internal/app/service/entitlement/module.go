package entitlement

import "go.uber.org/fx"

// Module exposes the entitlement matcher via Fx.
var Module = fx.Options(
	fx.Provide(NewMatcher),
)
