package gather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// categoryLabels maps CapitaLand marketing-category tag keys to display
// labels. Keys are lowercased with separators removed.
var categoryLabels = map[string]string{
	"fnb":                   "Food & Beverage",
	"beautyandwellness":     "Beauty & Wellness",
	"fashion":               "Fashion",
	"lifestyle":             "Lifestyle",
	"entertainment":         "Entertainment",
	"services":              "Services",
	"homeandliving":         "Home & Living",
	"sportsandleisure":      "Sports & Leisure",
	"jewelryandaccessories": "Jewelry & Accessories",
	"kidsandbabies":         "Kids & Babies",
	"educationandlearning":  "Education & Learning",
}

var (
	mallSlugPattern  = regexp.MustCompile(`/sg/malls/([^/]+)/en\.html`)
	pageCursorSuffix = regexp.MustCompile(`/cl%3Apgcursor/\d+/\d+\.json$`)
	unitPrefix       = regexp.MustCompile(`(?i)^unit-`)
)

var titleCaser = cases.Title(language.English)

// CapitaLandSource scrapes capitaland.com. The mall index is plain SSR
// HTML, but store directories are rendered client-side from a paginated
// tenant API, so directory fetches drive a headless browser: navigate,
// intercept the first tenant API response, then page through the rest with
// in-session fetches that carry the browser's cookies.
type CapitaLandSource struct {
	fetcher    *Fetcher
	logger     arbor.ILogger
	baseURL    string
	userAgent  string
	headless   bool
	navTimeout time.Duration
	apiWait    time.Duration
	pageSize   int
}

// tenantAPIResponse is the paginated tenant API payload. TotalCount is a
// pointer so a captured response can be rejected when the field is absent.
type tenantAPIResponse struct {
	TotalCount *int         `json:"totalcount"`
	Properties []tenantItem `json:"properties"`
}

type tenantItem struct {
	Title             string         `json:"jcr:title"`
	UnitNumber        []string       `json:"unitnumber"`
	MarketingCategory []string       `json:"marketingcategory"`
	BrandDetails      []tenantDetail `json:"_rel_brandtenants_details"`
}

type tenantDetail struct {
	Title string `json:"jcr:title"`
}

// NewCapitaLandSource creates the secondary mall source
func NewCapitaLandSource(fetcher *Fetcher, logger arbor.ILogger, baseURL, userAgent string, headless bool, navTimeout, apiWait time.Duration, pageSize int) interfaces.MallSource {
	return &CapitaLandSource{
		fetcher:    fetcher,
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		headless:   headless,
		navTimeout: navTimeout,
		apiWait:    apiWait,
		pageSize:   pageSize,
	}
}

func (c *CapitaLandSource) Name() string {
	return "capitaland"
}

// FetchMallList fetches the SSR malls index and extracts one listing per
// unique mall slug. Link text is the preferred name; the nearest ancestor
// heading and a humanized slug are fallbacks.
func (c *CapitaLandSource) FetchMallList(ctx context.Context) ([]models.MallListing, error) {
	html, err := c.fetcher.Get(ctx, c.baseURL+"/sg/en/shop/malls.html")
	if err != nil {
		c.logger.Warn().Err(err).Msg("CapitaLand mall index unavailable")
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse mall index: %w", err)
	}

	var listings []models.MallListing
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := mallSlugPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		slug := m[1]
		if seen[slug] {
			return
		}
		seen[slug] = true

		name := strings.TrimSpace(a.Text())
		if name == "" {
			a.Parents().EachWithBreak(func(_ int, parent *goquery.Selection) bool {
				if h := parent.Find("h2, h3, h4").First(); h.Length() > 0 {
					name = strings.TrimSpace(h.Text())
					return false
				}
				return true
			})
		}
		if name == "" {
			name = titleCaser.String(strings.ReplaceAll(slug, "-", " "))
		}

		listings = append(listings, models.MallListing{
			Name:    name,
			Slug:    slug,
			Website: c.baseURL + "/sg/malls/" + slug + "/en.html",
		})
	})

	c.logger.Info().Int("count", len(listings)).Msg("Fetched mall list from CapitaLand")
	return listings, nil
}

// FetchStoreDirectory renders the mall's stores page in a headless browser
// and drains the tenant API. An unavailable or undetectable browser yields
// an empty result, not an error: the secondary source is best-effort.
func (c *CapitaLandSource) FetchStoreDirectory(ctx context.Context, listing models.MallListing) ([]models.StoreListing, error) {
	pageURL := fmt.Sprintf("%s/sg/malls/%s/en/stores.html", c.baseURL, listing.Slug)

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(c.userAgent),
		chromedp.WindowSize(1280, 800),
	}
	if c.headless {
		opts = append(opts, chromedp.Headless)
	}

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocatorCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)
	defer browserCancel()

	type capturedAPI struct {
		url  string
		data tenantAPIResponse
	}
	apiCh := make(chan capturedAPI, 1)
	var captured atomic.Bool

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok {
			return
		}
		respURL := resp.Response.URL
		if !strings.Contains(resp.Response.MimeType, "json") {
			return
		}
		if !strings.Contains(respURL, "api-v1") || !strings.Contains(respURL, "tenants") {
			return
		}
		if !captured.CompareAndSwap(false, true) {
			return
		}

		// Body retrieval must not block the event loop
		requestID := resp.RequestID
		go func() {
			var body []byte
			err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(runCtx context.Context) error {
				b, err := network.GetResponseBody(requestID).Do(runCtx)
				if err != nil {
					return err
				}
				body = b
				return nil
			}))
			if err != nil {
				c.logger.Debug().Err(err).Str("url", respURL).Msg("Failed to read intercepted response body")
				captured.Store(false)
				return
			}

			var data tenantAPIResponse
			if err := json.Unmarshal(body, &data); err != nil || data.TotalCount == nil {
				// Not the paginated tenant payload; allow another capture
				captured.Store(false)
				return
			}

			select {
			case apiCh <- capturedAPI{url: respURL, data: data}:
			default:
			}
		}()
	})

	if err := chromedp.Run(browserCtx, network.Enable()); err != nil {
		c.logger.Warn().Err(err).Str("mall", listing.Name).Msg("Headless browser unavailable, skipping directory")
		return nil, nil
	}

	navCtx, navCancel := context.WithTimeout(browserCtx, c.navTimeout)
	defer navCancel()
	if err := chromedp.Run(navCtx, chromedp.Navigate(pageURL)); err != nil {
		// The tenant API often responds before full page load; keep waiting
		c.logger.Warn().Err(err).Str("url", pageURL).Msg("Store page navigation issue")
	}

	var first *capturedAPI
	select {
	case got := <-apiCh:
		first = &got
	case <-time.After(c.apiWait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if first == nil {
		c.logger.Warn().Str("mall", listing.Name).Msg("No tenant API response captured")
		return nil, nil
	}

	stores := parseTenantItems(first.data.Properties)
	totalCount := *first.data.TotalCount
	c.logger.Info().
		Str("mall", listing.Name).
		Int("total_count", totalCount).
		Int("first_page", len(stores)).
		Msg("Captured tenant directory")

	if totalCount > c.pageSize {
		baseURL := pageCursorSuffix.ReplaceAllString(first.url, "")
		if baseURL != first.url {
			stores = append(stores, c.fetchRemainingPages(browserCtx, baseURL, totalCount)...)
		}
	}

	return stores, nil
}

// fetchRemainingPages pages through the tenant API with in-session fetches
// so the browser's cookies accompany each request. A failed page stops
// pagination; earlier pages are kept.
func (c *CapitaLandSource) fetchRemainingPages(browserCtx context.Context, baseURL string, totalCount int) []models.StoreListing {
	var stores []models.StoreListing

	for start := c.pageSize + 1; start <= totalCount; start += c.pageSize {
		pageURL := fmt.Sprintf("%s/cl%%3Apgcursor/%d/%d.json", baseURL, start, c.pageSize)
		js := fmt.Sprintf(`fetch(%q, {credentials:"include"}).then(r => r.json())`, pageURL)

		var page tenantAPIResponse
		err := chromedp.Run(browserCtx, chromedp.Evaluate(js, &page,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			}))
		if err != nil {
			c.logger.Warn().Err(err).Int("start", start).Msg("Tenant API pagination failed")
			break
		}

		pageStores := parseTenantItems(page.Properties)
		stores = append(stores, pageStores...)
		c.logger.Debug().Int("start", start).Int("stores", len(pageStores)).Msg("Fetched tenant directory page")
	}

	return stores
}

// parseTenantItems maps tenant API items to store listings. Items without a
// resolvable name are skipped.
func parseTenantItems(items []tenantItem) []models.StoreListing {
	var stores []models.StoreListing

	for _, item := range items {
		name := strings.TrimSpace(item.Title)
		if name == "" && len(item.BrandDetails) > 0 {
			name = strings.TrimSpace(item.BrandDetails[0].Title)
		}
		if name == "" {
			continue
		}

		// Unit arrives as a tag path like ".../unit-03-k1"
		var unit string
		if len(item.UnitNumber) > 0 {
			parts := strings.Split(item.UnitNumber[0], "/")
			segment := unitPrefix.ReplaceAllString(parts[len(parts)-1], "")
			unit = "#" + strings.ToUpper(segment)
		}

		// Category arrives as a tag path; the second-to-last segment is the key
		var category string
		if len(item.MarketingCategory) > 0 {
			parts := strings.Split(item.MarketingCategory[0], "/")
			rawKey := parts[0]
			if len(parts) >= 2 {
				rawKey = parts[len(parts)-2]
			}
			key := strings.NewReplacer("-", "", " ", "").Replace(strings.ToLower(rawKey))
			if label, ok := categoryLabels[key]; ok {
				category = label
			} else {
				category = titleCaser.String(strings.ReplaceAll(rawKey, "-", " "))
			}
		}

		stores = append(stores, models.StoreListing{
			Name:     name,
			Category: category,
			Unit:     unit,
		})
	}

	return stores
}
