package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iSadist/chronos/internal"
	"github.com/iSadist/chronos/internal/storage"
)

var validate = validator.New()

type EntryRequest struct {
	ClientID string  `json:"clientId" validate:"required"`
	Duration float64 `json:"duration" validate:"gte=0"`
	Date     string  `json:"date" validate:"required"`
}

type RegisterRequest struct {
	Entries []EntryRequest `json:"entries" validate:"required,min=1,dive"`
}

func ValidateRegisterRequest(req *RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return internal.NewAppError(400, err.Error())
	}
	for _, e := range req.Entries {
		if _, err := ParseDate(e.Date); err != nil {
			return err
		}
	}
	return nil
}

// RegisterEntries persists a batch of entries for the user. Ids follow
// the "{clientId}-{epochMillis}" convention; the batch index is folded
// into the millis so two entries for the same client in one call cannot
// collide. Writes fan out concurrently and are not atomic: on a partial
// failure the successful writes stay, and the caller retries the batch
// (fresh timestamps make the retry safe).
func RegisterEntries(ctx context.Context, repo storage.TimeEntryRepository, user *internal.User, req *RegisterRequest) ([]internal.TimeEntry, error) {
	base := time.Now().UnixMilli()
	entries := make([]internal.TimeEntry, len(req.Entries))
	for i, r := range req.Entries {
		day, err := ParseDate(r.Date)
		if err != nil {
			return nil, err
		}
		entries[i] = internal.TimeEntry{
			ID:       fmt.Sprintf("%s-%d", r.ClientID, base+int64(i)),
			ClientID: r.ClientID,
			UserID:   user.ID,
			Date:     day.Format(dateLayout),
			Duration: r.Duration,
		}
	}

	errs := make([]error, len(entries))
	var wg sync.WaitGroup
	for i := range entries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.SaveEntry(ctx, &entries[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return entries, err
		}
	}
	return entries, nil
}

// DeleteEntry removes one entry by id. Only the owner may delete it; an
// entry that is already gone is a no-op, so retried deletes succeed.
func DeleteEntry(ctx context.Context, repo storage.TimeEntryRepository, user *internal.User, entryID string) error {
	entry, err := repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}
	if entry.UserID != user.ID {
		return internal.NewAppError(403, "Entry belongs to another user")
	}
	return repo.DeleteEntry(ctx, entryID)
}
