package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/awa/go-iap/appstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/lfsadigital/receipt-verifier/internal/app/service/entitlement"
	"github.com/lfsadigital/receipt-verifier/internal/platform/apple/apple_receipt"
	"github.com/lfsadigital/receipt-verifier/pkg/config"
	"github.com/lfsadigital/receipt-verifier/pkg/metrics"
)

// Purchase is one line item of the verified receipt as exposed to clients.
type Purchase struct {
	ProductID     string `json:"productId"`
	TransactionID string `json:"transactionId"`
	PurchaseDate  string `json:"purchaseDate"`
	Cancelled     bool   `json:"cancelled"`
}

// CheckResult is the outcome of a successful verification.
type CheckResult struct {
	HasLifetime bool
	Environment string
	Purchases   []Purchase
}

// VendorRejectionError reports a nonzero vendor status after the sandbox
// fallback already ran. The numeric status is kept so clients can tell
// rejection reasons apart.
type VendorRejectionError struct {
	Status int
}

func (e *VendorRejectionError) Error() string {
	return fmt.Sprintf("Apple validation failed with status %d", e.Status)
}

// ReceiptVerifier performs a single verifyReceipt call against one
// environment. Implemented by apple_receipt.Client.
type ReceiptVerifier interface {
	Verify(ctx context.Context, receiptData string, env apple_receipt.Environment) (*appstore.IAPResponse, error)
}

// ReceiptChecker is what the HTTP layer depends on.
type ReceiptChecker interface {
	CheckReceipt(ctx context.Context, receiptData string) (*CheckResult, error)
}

type Service struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	verifier ReceiptVerifier
	matcher  *entitlement.Matcher
	bpDur    *prometheus.HistogramVec
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, verifier ReceiptVerifier, matcher *entitlement.Matcher) ReceiptChecker {
	return &Service{
		cfg:      cfg,
		log:      log,
		verifier: verifier,
		matcher:  matcher,
		bpDur:    metrics.BusinessProcessHistogram("verifier"),
	}
}

// NewReceiptVerifier builds the outbound verifyReceipt client from config.
func NewReceiptVerifier(cfg *config.Config) (ReceiptVerifier, error) {
	cli, err := apple_receipt.New(&apple_receipt.Options{
		ProductionURL: cfg.AppleReceipt.ProductionURL,
		SandboxURL:    cfg.AppleReceipt.SandboxURL,
		SharedSecret:  cfg.AppleReceipt.SharedSecret,
		Timeout:       cfg.AppleReceipt.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init verifyReceipt client: %w", err)
	}
	return cli, nil
}

// CheckReceipt verifies the receipt against production, falls back to
// sandbox when Apple answers with the configured sentinel status, and
// evaluates the lifetime entitlement on the final result.
//
// At most one retry ever happens, and only for the sentinel status.
// Transport errors and every other status are final.
func (s *Service) CheckReceipt(ctx context.Context, receiptData string) (*CheckResult, error) {
	result, err := s.verifyOnce(ctx, receiptData, apple_receipt.Production)
	if err != nil {
		return nil, err
	}

	if result.Status == s.cfg.AppleReceipt.SandboxRetryStatus {
		s.log.Infow("receipt_from_test_environment", "status", result.Status)
		result, err = s.verifyOnce(ctx, receiptData, apple_receipt.Sandbox)
		if err != nil {
			return nil, err
		}
	}

	if result.Status != 0 {
		if reason := appstore.HandleError(result.Status); reason != nil {
			s.log.Infow("receipt_rejected", "status", result.Status, "reason", reason.Error())
		}
		return nil, &VendorRejectionError{Status: result.Status}
	}

	inApp := result.Receipt.InApp
	return &CheckResult{
		HasLifetime: s.matcher.HasLifetime(inApp),
		Environment: string(result.Environment),
		Purchases: lo.Map(inApp, func(p appstore.InApp, _ int) Purchase {
			return Purchase{
				ProductID:     p.ProductID,
				TransactionID: p.TransactionID,
				PurchaseDate:  p.PurchaseDate.PurchaseDate,
				Cancelled:     p.CancellationDate.CancellationDate != "",
			}
		}),
	}, nil
}

func (s *Service) verifyOnce(ctx context.Context, receiptData string, env apple_receipt.Environment) (*appstore.IAPResponse, error) {
	start := time.Now()
	result, err := s.verifier.Verify(ctx, receiptData, env)
	s.bpDur.WithLabelValues("apple_verify", string(env)).Observe(metrics.MillisecondsSince(start))
	if err != nil {
		s.log.Errorw("verify_receipt_call_failed", "environment", env, "error", err.Error())
		return nil, err
	}
	return result, nil
}
