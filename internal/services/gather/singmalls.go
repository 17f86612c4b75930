package gather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// SingMallsSource scrapes singmalls.app, a Next.js site that server-renders
// its full payload into a script#__NEXT_DATA__ JSON blob. No browser is
// needed: plain fetches plus JSON decoding cover both the mall list and each
// mall's store directory.
type SingMallsSource struct {
	fetcher *Fetcher
	logger  arbor.ILogger
	baseURL string
}

// nextData mirrors the slice of the Next.js SSR payload we consume
type nextData struct {
	Props struct {
		PageProps struct {
			Sites     []nextSite     `json:"sites"`
			Merchants []nextMerchant `json:"merchants"`
		} `json:"pageProps"`
	} `json:"props"`
}

type nextSite struct {
	Name             string `json:"name"`
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	FormattedAddress string `json:"formattedAddress"`
	Address          string `json:"address"`
}

type nextMerchant struct {
	Name                string `json:"name"`
	FormattedCategories string `json:"formattedCategories"`
	Category            string `json:"category"`
	FormattedLots       string `json:"formattedLots"`
	Unit                string `json:"unit"`
}

// NewSingMallsSource creates the primary mall source
func NewSingMallsSource(fetcher *Fetcher, logger arbor.ILogger, baseURL string) interfaces.MallSource {
	return &SingMallsSource{
		fetcher: fetcher,
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *SingMallsSource) Name() string {
	return "singmalls"
}

// FetchMallList fetches the mall index page and decodes its embedded payload.
// Entries missing a name or slug are skipped.
func (s *SingMallsSource) FetchMallList(ctx context.Context) ([]models.MallListing, error) {
	html, err := s.fetcher.Get(ctx, s.baseURL+"/en/malls")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mall list: %w", err)
	}

	data, err := extractNextData(html)
	if err != nil {
		return nil, fmt.Errorf("mall list page: %w", err)
	}

	var listings []models.MallListing
	for _, site := range data.Props.PageProps.Sites {
		name := strings.TrimSpace(site.Name)
		slug := strings.TrimSpace(site.ID)
		if slug == "" {
			slug = strings.TrimSpace(site.Slug)
		}
		if name == "" || slug == "" {
			continue
		}
		address := strings.TrimSpace(site.FormattedAddress)
		if address == "" {
			address = strings.TrimSpace(site.Address)
		}
		listings = append(listings, models.MallListing{
			Name:    name,
			Slug:    slug,
			Address: address,
			Website: s.baseURL + "/en/malls/" + slug,
		})
	}

	s.logger.Info().Int("count", len(listings)).Msg("Fetched mall list from singmalls")
	return listings, nil
}

// FetchStoreDirectory fetches one mall's directory page. A directory page
// whose payload is missing or empty yields an empty slice, not an error.
func (s *SingMallsSource) FetchStoreDirectory(ctx context.Context, listing models.MallListing) ([]models.StoreListing, error) {
	html, err := s.fetcher.Get(ctx, s.baseURL+"/en/malls/"+listing.Slug+"/directory")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directory for %s: %w", listing.Slug, err)
	}

	data, err := extractNextData(html)
	if err != nil {
		s.logger.Warn().Err(err).Str("mall", listing.Name).Msg("Directory page has no usable payload")
		return nil, nil
	}

	var stores []models.StoreListing
	for _, m := range data.Props.PageProps.Merchants {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		category := strings.TrimSpace(m.FormattedCategories)
		if category == "" {
			category = strings.TrimSpace(m.Category)
		}
		unit := strings.TrimSpace(m.FormattedLots)
		if unit == "" {
			unit = strings.TrimSpace(m.Unit)
		}
		stores = append(stores, models.StoreListing{
			Name:     name,
			Category: category,
			Unit:     unit,
		})
	}
	return stores, nil
}

// extractNextData pulls the script#__NEXT_DATA__ JSON blob out of SSR HTML
func extractNextData(html []byte) (*nextData, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	raw := doc.Find("script#__NEXT_DATA__").Text()
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no __NEXT_DATA__ script found")
	}

	var data nextData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to decode __NEXT_DATA__: %w", err)
	}
	return &data, nil
}
