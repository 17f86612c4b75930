package gather

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

func TestParseFloor(t *testing.T) {
	tests := []struct {
		unit string
		want string
	}{
		{"#03-24A", "3"},
		{"#3-12", "3"},
		{"03-12", "3"},
		{"#12-01", "12"},
		{"#01-25", "1"},
		{"B1-02", ""},
		{"#B2-10", ""},
		{"Level 3", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFloor(tt.unit), "unit %q", tt.unit)
	}
}

func TestInferRegionFromAddress(t *testing.T) {
	tests := []struct {
		address string
		want    models.Region
	}{
		{"1 HarbourFront Walk, Singapore 098585", models.RegionCentral},
		{"78 Airport Boulevard, Singapore 819666", models.RegionEast},
		{"238 Thomson Road, Singapore 307683", models.RegionNorth},
		{"50 Jurong Gateway Road, Singapore 608549", models.RegionWest},
		{"no postal code here", ""},
		{"Singapore 740123", ""}, // unassigned prefix
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferRegionFromAddress(tt.address), "address %q", tt.address)
	}
}

func TestResolveRegion(t *testing.T) {
	regionMap := map[string]models.Region{
		"vivocity": models.RegionCentral,
	}

	// Curated map wins over postal inference
	got := ResolveRegion(regionMap, "vivocity", "78 Airport Boulevard, Singapore 819666")
	assert.Equal(t, models.RegionCentral, got)

	// Postal inference when the map has no entry
	got = ResolveRegion(regionMap, "jewelchangiairport", "78 Airport Boulevard, Singapore 819666")
	assert.Equal(t, models.RegionEast, got)

	// Neither source resolves
	got = ResolveRegion(regionMap, "unknownmall", "somewhere")
	assert.Equal(t, models.Region(""), got)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"VivoCity", "vivocity"},
		{"ION Orchard", "ionorchard"},
		{"Bee Cheng Hiang!", "beechenghiang"},
		{"313@Somerset", "313somerset"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.NormalizeName(tt.in))
	}
}
