// Package store contains entities and services to process and contain them.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is an error that is returned when the requested entity is not found.
var ErrNotFound = errors.New("not found")

// Interface defines methods for the article index.
type Interface interface {
	Put(ctx context.Context, ref Ref) error
	Get(ctx context.Context, issueNumber int) (Ref, error)
	List(ctx context.Context) ([]Ref, error)
}

// Ref points to a persisted article document.
type Ref struct {
	IssueNumber int       `json:"issue_number"`
	Title       string    `json:"title"`
	Path        string    `json:"path"`
	UpdatedAt   time.Time `json:"updated_at"`
}
