package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/iSadist/chronos/internal"
	"github.com/iSadist/chronos/internal/storage"
)

// Clients are not stored as their own entity: the client list is the
// distinct set of client ids across a user's entries. Creating a client
// plants a zero-duration sentinel entry so the id shows up in that set.

// ListClients derives the distinct, sorted client ids for a user.
func ListClients(ctx context.Context, repo storage.TimeEntryRepository, userID string) ([]string, error) {
	entries, err := repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	clients := []string{}
	for _, e := range entries {
		if !seen[e.ClientID] {
			seen[e.ClientID] = true
			clients = append(clients, e.ClientID)
		}
	}
	sort.Strings(clients)
	return clients, nil
}

// CreateClient records a new client for the user. With strict on, a
// duplicate is a conflict; with strict off it is an idempotent no-op.
func CreateClient(ctx context.Context, repo storage.TimeEntryRepository, user *internal.User, clientID string, strict bool) error {
	clients, err := ListClients(ctx, repo, user.ID)
	if err != nil {
		return err
	}
	for _, c := range clients {
		if c == clientID {
			if strict {
				return internal.NewAppError(409, "Client already exists: "+clientID)
			}
			return nil
		}
	}

	sentinel := &internal.TimeEntry{
		ID:       fmt.Sprintf("%s-%d", clientID, time.Now().UnixMilli()),
		ClientID: clientID,
		UserID:   user.ID,
		Date:     internal.SentinelDate,
		Duration: 0,
	}
	return repo.SaveEntry(ctx, sentinel)
}

// DeleteClient removes every entry billed to the client for this user.
// Deletes fan out concurrently with no rollback: a failed delete leaves
// the already-deleted entries gone, and re-running the operation is safe.
func DeleteClient(ctx context.Context, repo storage.TimeEntryRepository, user *internal.User, clientID string) error {
	entries, err := repo.ListEntries(ctx, user.ID)
	if err != nil {
		return err
	}

	var targets []internal.TimeEntry
	for _, e := range entries {
		if e.ClientID == clientID {
			targets = append(targets, e)
		}
	}
	if len(targets) == 0 {
		return internal.NewAppError(404, "Client not found: "+clientID)
	}

	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, e := range targets {
		wg.Add(1)
		go func(i int, entryID string) {
			defer wg.Done()
			errs[i] = repo.DeleteEntry(ctx, entryID)
		}(i, e.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
