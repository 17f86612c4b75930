package gather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

const regionPageHTML = `<html><body>
	<div class="mw-heading mw-heading2"><h2 id="Central">Central</h2></div>
	<div class="div-col">
		<ul>
			<li>VivoCity</li>
			<li>ION Orchard</li>
			<li>313@Somerset</li>
		</ul>
	</div>
	<div class="mw-heading mw-heading2"><h2 id="East">East</h2></div>
	<div class="wrapper">
		<div class="div-col">
			<ul>
				<li>Jewel Changi Airport</li>
				<li></li>
			</ul>
		</div>
	</div>
	<div class="mw-heading mw-heading2"><h2 id="North">North</h2></div>
	<p>No list follows this heading.</p>
</body></html>`

func newRegionMapper(t *testing.T, url string) *WikipediaRegionMapper {
	t.Helper()
	fetcher := NewFetcher(&http.Client{Timeout: 5 * time.Second}, arbor.NewLogger(), "", 1, time.Millisecond)
	return NewWikipediaRegionMapper(fetcher, arbor.NewLogger(), url).(*WikipediaRegionMapper)
}

func TestWikipediaFetchRegionMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(regionPageHTML))
	}))
	defer server.Close()

	regionMap := newRegionMapper(t, server.URL).FetchRegionMap(context.Background())

	assert.Equal(t, models.RegionCentral, regionMap["vivocity"])
	assert.Equal(t, models.RegionCentral, regionMap["ionorchard"])
	assert.Equal(t, models.RegionCentral, regionMap["313somerset"])
	assert.Equal(t, models.RegionEast, regionMap["jewelchangiairport"], "nested column lists are found")
	assert.Len(t, regionMap, 4, "empty list items and list-less headings contribute nothing")
}

func TestWikipediaFetchRegionMap_UpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	regionMap := newRegionMapper(t, server.URL).FetchRegionMap(context.Background())
	assert.Empty(t, regionMap, "region map is best-effort and never fails the run")
}
