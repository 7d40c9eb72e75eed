package storage

import "github.com/iSadist/chronos/internal"

func NewFileRepository(entriesFile string, logger internal.Logger) (TimeEntryRepository, error) {
	return NewFileStorage(entriesFile, logger)
}

func NewPostgresRepository(dsn string, logger internal.Logger) (TimeEntryRepository, error) {
	return NewPostgresStorage(dsn, logger)
}
