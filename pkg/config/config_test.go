package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, "https://buy.itunes.apple.com/verifyReceipt", cfg.AppleReceipt.ProductionURL)
	require.Equal(t, "https://sandbox.itunes.apple.com/verifyReceipt", cfg.AppleReceipt.SandboxURL)
	require.Equal(t, 21007, cfg.AppleReceipt.SandboxRetryStatus)
	require.Equal(t, 15, cfg.AppleReceipt.TimeoutSeconds)
	require.Empty(t, cfg.AppleReceipt.SharedSecret)

	require.Equal(t, []string{"com.luiz.PandaApp.lifetime"}, cfg.Entitlement.LifetimeProductIDs)
	require.Equal(t, "lifetime", cfg.Entitlement.LifetimeKeyword)

	require.Equal(t, EnvDev, cfg.Env)
	require.Equal(t, 8888, cfg.Server.Port)
}
