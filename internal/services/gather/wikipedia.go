package gather

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// regionSections lists the heading anchors on the Wikipedia mall list page.
// South has no section there; South malls are only reachable via postal
// inference.
var regionSections = []struct {
	headingID string
	region    models.Region
}{
	{"Central", models.RegionCentral},
	{"East", models.RegionEast},
	{"North", models.RegionNorth},
	{"North-East", models.RegionNorthEast},
	{"West", models.RegionWest},
}

// WikipediaRegionMapper scrapes the "List of shopping malls in Singapore"
// article, where each region is a heading followed by a columned list of
// mall names.
type WikipediaRegionMapper struct {
	fetcher *Fetcher
	logger  arbor.ILogger
	url     string
}

// NewWikipediaRegionMapper creates the region mapper
func NewWikipediaRegionMapper(fetcher *Fetcher, logger arbor.ILogger, url string) interfaces.RegionMapper {
	return &WikipediaRegionMapper{
		fetcher: fetcher,
		logger:  logger,
		url:     url,
	}
}

// FetchRegionMap returns normalized mall name -> region. The map is
// best-effort: any failure yields an empty map so the run can continue on
// postal inference alone.
func (w *WikipediaRegionMapper) FetchRegionMap(ctx context.Context) map[string]models.Region {
	regionMap := make(map[string]models.Region)

	html, err := w.fetcher.Get(ctx, w.url)
	if err != nil {
		w.logger.Warn().Err(err).Msg("Region source unavailable, relying on postal inference")
		return regionMap
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		w.logger.Warn().Err(err).Msg("Failed to parse region source HTML")
		return regionMap
	}

	for _, section := range regionSections {
		heading := doc.Find("h2#" + section.headingID).First()
		if heading.Length() == 0 {
			continue
		}

		list := nextColumnList(heading)
		if list == nil {
			continue
		}

		region := section.region
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			name := strings.TrimSpace(li.Text())
			if name != "" {
				regionMap[models.NormalizeName(name)] = region
			}
		})
	}

	w.logger.Info().Int("count", len(regionMap)).Msg("Built region map")
	return regionMap
}

// nextColumnList finds the first div.div-col after the heading. The heading
// sits inside a wrapper element, so the scan walks the wrapper's following
// siblings and descends into each.
func nextColumnList(heading *goquery.Selection) *goquery.Selection {
	var found *goquery.Selection
	heading.Parent().NextAll().EachWithBreak(func(_ int, sibling *goquery.Selection) bool {
		if sibling.Is("div.div-col") {
			found = sibling
			return false
		}
		if inner := sibling.Find("div.div-col").First(); inner.Length() > 0 {
			found = inner
			return false
		}
		return true
	})
	return found
}
