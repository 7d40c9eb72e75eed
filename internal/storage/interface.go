package storage

import (
	"context"

	"github.com/iSadist/chronos/internal"
)

// TimeEntryRepository is the single-table store of time entries. Listing
// is always scoped to one user; that is the access partition.
type TimeEntryRepository interface {
	SaveEntry(ctx context.Context, entry *internal.TimeEntry) error
	ListEntries(ctx context.Context, userID string) ([]internal.TimeEntry, error)
	GetEntry(ctx context.Context, entryID string) (*internal.TimeEntry, error)
	// DeleteEntry removes the entry if present. Deleting an id that is
	// already gone is not an error.
	DeleteEntry(ctx context.Context, entryID string) error
}

type UserRepository interface {
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
}
