package verification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/awa/go-iap/appstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lfsadigital/receipt-verifier/internal/app/service/entitlement"
	"github.com/lfsadigital/receipt-verifier/internal/platform/apple/apple_receipt"
	"github.com/lfsadigital/receipt-verifier/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppleReceipt: config.AppleReceiptConfig{
			SandboxRetryStatus: 21007,
			TimeoutSeconds:     5,
		},
		Entitlement: config.EntitlementConfig{
			LifetimeProductIDs: []string{"com.luiz.PandaApp.lifetime"},
			LifetimeKeyword:    "lifetime",
		},
	}
}

type stubVerifier struct {
	responses map[apple_receipt.Environment]*appstore.IAPResponse
	errs      map[apple_receipt.Environment]error
	calls     []apple_receipt.Environment
}

func (s *stubVerifier) Verify(_ context.Context, _ string, env apple_receipt.Environment) (*appstore.IAPResponse, error) {
	s.calls = append(s.calls, env)
	if err := s.errs[env]; err != nil {
		return nil, err
	}
	return s.responses[env], nil
}

func newTestService(v ReceiptVerifier) ReceiptChecker {
	cfg := testConfig()
	return NewService(cfg, zap.NewNop().Sugar(), v, entitlement.NewMatcher(cfg))
}

func TestCheckReceipt_ValidProductionReceipt(t *testing.T) {
	stub := &stubVerifier{responses: map[apple_receipt.Environment]*appstore.IAPResponse{
		apple_receipt.Production: {
			Status:      0,
			Environment: "Production",
			Receipt: appstore.Receipt{InApp: []appstore.InApp{
				{
					ProductID:     "com.luiz.PandaApp.lifetime",
					TransactionID: "1",
					PurchaseDate:  appstore.PurchaseDate{PurchaseDate: "2025-01-01"},
				},
				{
					ProductID:        "com.luiz.PandaApp.lifetime.v2",
					TransactionID:    "2",
					PurchaseDate:     appstore.PurchaseDate{PurchaseDate: "2025-03-01"},
					CancellationDate: appstore.CancellationDate{CancellationDate: "2025-03-05"},
				},
			}},
		},
	}}

	res, err := newTestService(stub).CheckReceipt(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, []apple_receipt.Environment{apple_receipt.Production}, stub.calls)
	require.True(t, res.HasLifetime)
	require.Equal(t, "Production", res.Environment)
	require.Equal(t, []Purchase{
		{ProductID: "com.luiz.PandaApp.lifetime", TransactionID: "1", PurchaseDate: "2025-01-01", Cancelled: false},
		{ProductID: "com.luiz.PandaApp.lifetime.v2", TransactionID: "2", PurchaseDate: "2025-03-01", Cancelled: true},
	}, res.Purchases)
}

func TestCheckReceipt_SandboxFallbackOnSentinelStatus(t *testing.T) {
	stub := &stubVerifier{responses: map[apple_receipt.Environment]*appstore.IAPResponse{
		apple_receipt.Production: {Status: 21007},
		apple_receipt.Sandbox:    {Status: 0, Environment: "Sandbox"},
	}}

	res, err := newTestService(stub).CheckReceipt(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, []apple_receipt.Environment{apple_receipt.Production, apple_receipt.Sandbox}, stub.calls)
	require.False(t, res.HasLifetime)
	require.NotNil(t, res.Purchases)
	require.Empty(t, res.Purchases)
}

func TestCheckReceipt_OtherStatusIsFinal(t *testing.T) {
	stub := &stubVerifier{responses: map[apple_receipt.Environment]*appstore.IAPResponse{
		apple_receipt.Production: {Status: 21003},
	}}

	_, err := newTestService(stub).CheckReceipt(context.Background(), "abc")
	require.Error(t, err)
	require.Equal(t, []apple_receipt.Environment{apple_receipt.Production}, stub.calls)

	var rejection *VendorRejectionError
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, 21003, rejection.Status)
	require.Equal(t, "Apple validation failed with status 21003", rejection.Error())
}

func TestCheckReceipt_SandboxResultIsFinal(t *testing.T) {
	stub := &stubVerifier{responses: map[apple_receipt.Environment]*appstore.IAPResponse{
		apple_receipt.Production: {Status: 21007},
		apple_receipt.Sandbox:    {Status: 21004},
	}}

	_, err := newTestService(stub).CheckReceipt(context.Background(), "abc")
	require.Equal(t, []apple_receipt.Environment{apple_receipt.Production, apple_receipt.Sandbox}, stub.calls)

	var rejection *VendorRejectionError
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, 21004, rejection.Status)
}

func TestCheckReceipt_TransportErrorIsNotRetried(t *testing.T) {
	stub := &stubVerifier{errs: map[apple_receipt.Environment]error{
		apple_receipt.Production: apple_receipt.ErrVendorUnreachable,
	}}

	_, err := newTestService(stub).CheckReceipt(context.Background(), "abc")
	require.ErrorIs(t, err, apple_receipt.ErrVendorUnreachable)
	require.Equal(t, []apple_receipt.Environment{apple_receipt.Production}, stub.calls)

	var rejection *VendorRejectionError
	require.False(t, errors.As(err, &rejection))
}

// End-to-end fallback through the real verifyReceipt client against vendor
// doubles: the production double must be hit exactly once, the sandbox
// double exactly once, and the final verdict comes from the sandbox answer.
func TestCheckReceipt_FallbackAgainstVendorDoubles(t *testing.T) {
	var prodCalls, sandboxCalls int

	prod := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		prodCalls++
		_ = json.NewEncoder(w).Encode(map[string]any{"status": 21007})
	}))
	defer prod.Close()

	sandbox := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		sandboxCalls++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":      0,
			"environment": "Sandbox",
			"receipt": map[string]any{
				"in_app": []map[string]any{{
					"product_id":     "com.luiz.PandaApp.lifetime.v3",
					"transaction_id": "42",
					"purchase_date":  "2025-06-01",
				}},
			},
		})
	}))
	defer sandbox.Close()

	cfg := testConfig()
	cfg.AppleReceipt.ProductionURL = prod.URL
	cfg.AppleReceipt.SandboxURL = sandbox.URL

	verifier, err := NewReceiptVerifier(cfg)
	require.NoError(t, err)

	svc := NewService(cfg, zap.NewNop().Sugar(), verifier, entitlement.NewMatcher(cfg))
	res, err := svc.CheckReceipt(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, 1, prodCalls)
	require.Equal(t, 1, sandboxCalls)
	require.True(t, res.HasLifetime)
	require.Equal(t, "Sandbox", res.Environment)
}
