package common

import (
	"github.com/google/uuid"
)

// NewJobID generates a unique gather job ID with the "job_" prefix
// Format: job_<uuid>
func NewJobID() string {
	return "job_" + uuid.New().String()
}

// NewEntityID generates a unique entity ID for stored records
func NewEntityID() string {
	return uuid.New().String()
}
