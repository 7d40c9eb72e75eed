package api

import (
	"github.com/iSadist/chronos/internal"
	"github.com/iSadist/chronos/internal/storage"
)

// App carries the process-wide collaborators into the handlers. There is
// no ambient singleton; main constructs one and passes it down.
type App interface {
	Logger() internal.Logger
	Entries() storage.TimeEntryRepository
	// StrictClients reports whether creating a duplicate client is a
	// conflict rather than a no-op.
	StrictClients() bool
}
