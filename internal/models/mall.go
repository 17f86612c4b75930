package models

import (
	"time"
)

// Region is the canonical region assigned to a mall
type Region string

const (
	RegionCentral   Region = "Central"
	RegionNorth     Region = "North"
	RegionNorthEast Region = "North-East"
	RegionEast      Region = "East"
	RegionWest      Region = "West"
	RegionSouth     Region = "South"
)

// Mall represents a physical shopping venue. Name is the natural key:
// a mall is created on first sighting from any source and enriched by
// later sightings, never deleted by the pipeline.
type Mall struct {
	ID          string    `badgerhold:"key" json:"id"`
	Name        string    `badgerhold:"unique" json:"name"`
	Address     string    `json:"address,omitempty"`
	Region      Region    `json:"region,omitempty"`
	Website     string    `json:"website,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// Store represents a retail brand, independent of any one mall.
// NormalizedName is the dedup key across all sources; name and category
// are immutable after first creation.
type Store struct {
	ID             string `badgerhold:"key" json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category,omitempty"`
	NormalizedName string `badgerhold:"unique" json:"normalized_name"`
}

// MallStore is the occupancy relationship between one mall and one store.
// At most one row exists per (mall, store) pair; floor and unit are
// recorded once and never updated.
type MallStore struct {
	ID         string `badgerhold:"key" json:"id"`
	MallID     string `badgerhold:"index" json:"mall_id"`
	StoreID    string `badgerhold:"index" json:"store_id"`
	Floor      string `json:"floor,omitempty"`
	UnitNumber string `json:"unit_number,omitempty"`
}

// MallStoreEntry is the store view embedded in a mall detail response
type MallStoreEntry struct {
	StoreID    string `json:"store_id"`
	StoreName  string `json:"store_name"`
	Category   string `json:"category,omitempty"`
	Floor      string `json:"floor,omitempty"`
	UnitNumber string `json:"unit_number,omitempty"`
}

// MallDetail is a mall with its resident stores
type MallDetail struct {
	Mall
	Stores []MallStoreEntry `json:"stores"`
}
