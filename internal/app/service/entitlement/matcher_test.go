package entitlement

import (
	"testing"

	"github.com/awa/go-iap/appstore"
	"github.com/stretchr/testify/require"

	"github.com/lfsadigital/receipt-verifier/pkg/config"
)

func testMatcher() *Matcher {
	return NewMatcher(&config.Config{
		Entitlement: config.EntitlementConfig{
			LifetimeProductIDs: []string{"com.luiz.PandaApp.lifetime"},
			LifetimeKeyword:    "lifetime",
		},
	})
}

func TestHasLifetime_ExactMatch(t *testing.T) {
	m := testMatcher()
	purchases := []appstore.InApp{{
		ProductID:     "com.luiz.PandaApp.lifetime",
		TransactionID: "1",
	}}
	require.True(t, m.HasLifetime(purchases))
}

func TestHasLifetime_KeywordVariantMatch(t *testing.T) {
	m := testMatcher()
	// Not in the exact set; grants through the substring wildcard.
	purchases := []appstore.InApp{{
		ProductID:     "com.luiz.PandaApp.lifetime.v3",
		TransactionID: "9",
	}}
	require.True(t, m.HasLifetime(purchases))
}

func TestHasLifetime_KeywordIsCaseSensitive(t *testing.T) {
	m := testMatcher()
	purchases := []appstore.InApp{{
		ProductID:     "com.luiz.PandaApp.Lifetime.v3",
		TransactionID: "9",
	}}
	require.False(t, m.HasLifetime(purchases))
}

func TestHasLifetime_CancelledNeverGrants(t *testing.T) {
	m := testMatcher()
	purchases := []appstore.InApp{{
		ProductID:        "com.luiz.PandaApp.lifetime",
		TransactionID:    "1",
		CancellationDate: appstore.CancellationDate{CancellationDate: "2025-02-01"},
	}}
	require.False(t, m.HasLifetime(purchases))
}

func TestHasLifetime_LaterRecordStillGrants(t *testing.T) {
	m := testMatcher()
	purchases := []appstore.InApp{
		{
			ProductID:        "com.luiz.PandaApp.lifetime",
			TransactionID:    "1",
			CancellationDate: appstore.CancellationDate{CancellationDate: "2025-02-01"},
		},
		{
			ProductID:     "com.luiz.PandaApp.consumable.coins",
			TransactionID: "2",
		},
		{
			ProductID:     "com.luiz.PandaApp.lifetime",
			TransactionID: "3",
		},
	}
	require.True(t, m.HasLifetime(purchases))
}

func TestHasLifetime_UnrelatedProducts(t *testing.T) {
	m := testMatcher()
	purchases := []appstore.InApp{{
		ProductID:     "com.luiz.PandaApp.consumable.coins",
		TransactionID: "2",
	}}
	require.False(t, m.HasLifetime(purchases))
}

func TestHasLifetime_EmptyAndNilLists(t *testing.T) {
	m := testMatcher()
	require.False(t, m.HasLifetime(nil))
	require.False(t, m.HasLifetime([]appstore.InApp{}))
}

func TestHasLifetime_EmptyKeywordDisablesWildcard(t *testing.T) {
	m := NewMatcher(&config.Config{
		Entitlement: config.EntitlementConfig{
			LifetimeProductIDs: []string{"com.luiz.PandaApp.lifetime"},
		},
	})
	require.False(t, m.HasLifetime([]appstore.InApp{{ProductID: "com.luiz.PandaApp.other"}}))
	require.True(t, m.HasLifetime([]appstore.InApp{{ProductID: "com.luiz.PandaApp.lifetime"}}))
}
