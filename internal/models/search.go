package models

// SearchRequest is the list of store names a user wants malls ranked against
type SearchRequest struct {
	Stores []string `json:"stores"`
}

// MatchedStore records whether one requested name resolved to a known store
type MatchedStore struct {
	Requested   string `json:"requested"`
	MatchedID   string `json:"matched_id,omitempty"`
	MatchedName string `json:"matched_name,omitempty"`
	Found       bool   `json:"found"`
}

// MallSearchResult is one mall ranked by how many requested stores it contains
type MallSearchResult struct {
	Mall           *Mall          `json:"mall"`
	MatchedCount   int            `json:"matched_count"`
	TotalRequested int            `json:"total_requested"`
	MatchedStores  []MatchedStore `json:"matched_stores"`
}

// SearchResponse is the ranked result set plus the names that matched nothing
type SearchResponse struct {
	Results         []MallSearchResult `json:"results"`
	UnmatchedStores []string           `json:"unmatched_stores"`
}
