package interfaces

import (
	"context"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// SearchService resolves user store names against the canonical record set
// and ranks malls by how many of the requested stores they contain
type SearchService interface {
	Search(ctx context.Context, storeNames []string) (*models.SearchResponse, error)
}
