package entitlement

import (
	"strings"

	"github.com/awa/go-iap/appstore"
	"github.com/samber/lo"

	"github.com/lfsadigital/receipt-verifier/pkg/config"
)

// Matcher decides whether a verified purchase list contains the one-time
// lifetime unlock. The policy is immutable after construction and is shared
// read-only across concurrent requests.
type Matcher struct {
	exact   map[string]struct{}
	keyword string
}

func NewMatcher(cfg *config.Config) *Matcher {
	exact := make(map[string]struct{}, len(cfg.Entitlement.LifetimeProductIDs))
	for _, id := range cfg.Entitlement.LifetimeProductIDs {
		exact[id] = struct{}{}
	}
	return &Matcher{exact: exact, keyword: cfg.Entitlement.LifetimeKeyword}
}

// HasLifetime reports whether any uncancelled purchase grants the lifetime
// unlock. A missing or empty purchase list never grants.
func (m *Matcher) HasLifetime(purchases []appstore.InApp) bool {
	return lo.SomeBy(purchases, m.grants)
}

func (m *Matcher) grants(p appstore.InApp) bool {
	if p.CancellationDate.CancellationDate != "" {
		// refunded or revoked; an identifier match no longer counts
		return false
	}
	if _, ok := m.exact[p.ProductID]; ok {
		return true
	}
	// Wildcard for identifier variants shipped after the exact list was
	// frozen. Case-sensitive.
	return m.keyword != "" && strings.Contains(p.ProductID, m.keyword)
}
