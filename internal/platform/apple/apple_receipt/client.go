package apple_receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/awa/go-iap/appstore"
)

// Sentinel errors so callers can tell "could not reach Apple" from
// "Apple answered something undecodable". Both are terminal for a request.
var (
	ErrVendorUnreachable  = errors.New("apple verifyReceipt unreachable")
	ErrMalformedResponse  = errors.New("malformed verifyReceipt response")
	ErrUnknownEnvironment = errors.New("no endpoint configured for environment")
)

// Environment names one of Apple's two verifyReceipt deployments. The
// values match the environment strings Apple uses in its responses.
type Environment string

const (
	Production Environment = "Production"
	Sandbox    Environment = "Sandbox"
)

const defaultTimeout = 15 * time.Second

type Options struct {
	ProductionURL string
	SandboxURL    string
	SharedSecret  string
	Timeout       time.Duration
}

// Client talks to Apple's legacy verifyReceipt endpoints. One Verify call
// hits exactly one environment; the production-to-sandbox fallback is the
// caller's decision, not the client's.
type Client struct {
	httpClient *http.Client
	endpoints  map[Environment]string
	secret     string
}

func New(opts *Options) (*Client, error) {
	if opts == nil {
		return nil, errors.New("opts is nil")
	}
	if opts.ProductionURL == "" || opts.SandboxURL == "" {
		return nil, errors.New("production and sandbox endpoints are both required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoints: map[Environment]string{
			Production: opts.ProductionURL,
			Sandbox:    opts.SandboxURL,
		},
		secret: opts.SharedSecret,
	}, nil
}

// Verify posts the receipt blob to the endpoint for env and decodes the
// response. ExcludeOldTransactions stays false on purpose: transactions tied
// to deleted product identifiers only show up when old transactions are
// included. The vendor status code is not interpreted here.
func (c *Client) Verify(ctx context.Context, receiptData string, env Environment) (*appstore.IAPResponse, error) {
	endpoint, ok := c.endpoints[env]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
	}

	body, err := json.Marshal(&appstore.IAPRequest{
		ReceiptData:            receiptData,
		Password:               c.secret,
		ExcludeOldTransactions: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVendorUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %d from %s", ErrVendorUnreachable, resp.StatusCode, endpoint)
	}

	var result appstore.IAPResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &result, nil
}
