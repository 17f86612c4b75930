package gather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

const capitalandIndexHTML = `<html><body>
	<div class="mall-card">
		<h3>Plaza Singapura</h3>
		<a href="/sg/malls/plaza-singapura/en.html"></a>
	</div>
	<a href="/sg/malls/funan/en.html">Funan</a>
	<a href="/sg/malls/funan/en.html">Funan duplicate</a>
	<a href="/sg/malls/bugis-junction/en.html"></a>
	<a href="/sg/about/company.html">Not a mall link</a>
</body></html>`

func newCapitaLandTestSource(t *testing.T, baseURL string) *CapitaLandSource {
	t.Helper()
	fetcher := NewFetcher(&http.Client{Timeout: 5 * time.Second}, arbor.NewLogger(), "", 1, time.Millisecond)
	return NewCapitaLandSource(fetcher, arbor.NewLogger(), baseURL, "wifey-test", true, time.Second, time.Second, 100).(*CapitaLandSource)
}

func TestCapitaLandFetchMallList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sg/en/shop/malls.html" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(capitalandIndexHTML))
	}))
	defer server.Close()

	source := newCapitaLandTestSource(t, server.URL)
	listings, err := source.FetchMallList(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 3, "duplicate slugs collapse, non-mall links are ignored")

	assert.Equal(t, "Plaza Singapura", listings[0].Name, "empty link text falls back to ancestor heading")
	assert.Equal(t, "plaza-singapura", listings[0].Slug)
	assert.Equal(t, server.URL+"/sg/malls/plaza-singapura/en.html", listings[0].Website)

	assert.Equal(t, "Funan", listings[1].Name, "link text is preferred")

	assert.Equal(t, "Bugis Junction", listings[2].Name, "last resort is the humanized slug")
}

func TestCapitaLandFetchMallList_UpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := newCapitaLandTestSource(t, server.URL)
	listings, err := source.FetchMallList(context.Background())
	require.NoError(t, err, "an unreachable secondary index is recoverable")
	assert.Empty(t, listings)
}

func TestParseTenantItems(t *testing.T) {
	items := []tenantItem{
		{
			Title:             "Starbucks",
			UnitNumber:        []string{"capitaland/units/unit-03-k1"},
			MarketingCategory: []string{"capitaland/categories/fnb/cafe"},
		},
		{
			BrandDetails:      []tenantDetail{{Title: "Charles & Keith"}},
			UnitNumber:        []string{"capitaland/units/unit-01-22"},
			MarketingCategory: []string{"capitaland/categories/jewelry-and-accessories/bags"},
		},
		{
			Title:             "Pet Lovers Centre",
			MarketingCategory: []string{"capitaland/categories/pets-and-supplies/shop"},
		},
		{
			// No name anywhere, skipped
			UnitNumber: []string{"capitaland/units/unit-02-01"},
		},
	}

	stores := parseTenantItems(items)
	require.Len(t, stores, 3)

	assert.Equal(t, "Starbucks", stores[0].Name)
	assert.Equal(t, "#03-K1", stores[0].Unit, "unit tag path is rewritten to a unit label")
	assert.Equal(t, "Food & Beverage", stores[0].Category, "known category keys map to display labels")

	assert.Equal(t, "Charles & Keith", stores[1].Name, "name falls back to brand details")
	assert.Equal(t, "Jewelry & Accessories", stores[1].Category)

	assert.Empty(t, stores[2].Unit)
	assert.Equal(t, "Pets And Supplies", stores[2].Category, "unknown category keys are humanized")
}

func TestParseTenantItems_Empty(t *testing.T) {
	assert.Empty(t, parseTenantItems(nil))
	assert.Empty(t, parseTenantItems([]tenantItem{}))
}
