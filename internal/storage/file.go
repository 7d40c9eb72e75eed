package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/iSadist/chronos/internal"
)

// FileStorage keeps all time entries in memory and persists them to a
// single JSON file. Writes are debounced: mutations poke the save channel
// and a worker flushes at most once per delay window, via a temp-file
// rename so the file on disk is never half-written.
type FileStorage struct {
	entries     map[string]*internal.TimeEntry   // id -> TimeEntry
	userIndex   map[string][]*internal.TimeEntry // userID -> entries sorted by date ascending
	mu          sync.RWMutex
	entriesFile string
	saveChan    chan struct{}
	shutdown    chan struct{}
	saveDelay   time.Duration
	logger      internal.Logger
}

func NewFileStorage(entriesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		entries:     make(map[string]*internal.TimeEntry),
		userIndex:   make(map[string][]*internal.TimeEntry),
		entriesFile: entriesFile,
		saveChan:    make(chan struct{}, 1),
		shutdown:    make(chan struct{}),
		saveDelay:   500 * time.Millisecond,
		logger:      logger,
	}

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load time entries: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) load() error {
	file, err := os.Open(s.entriesFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var entries []*internal.TimeEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.ID] = e
		s.userIndex[e.UserID] = append(s.userIndex[e.UserID], e)
	}
	for userID := range s.userIndex {
		sortByDate(s.userIndex[userID])
	}
	return nil
}

// ISO date strings order lexicographically, so a plain string compare is
// a chronological sort.
func sortByDate(entries []*internal.TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) save() error {
	s.mu.RLock()
	entries := make([]*internal.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.entriesFile, entries)
}

func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Errorf("storage: error saving time entries: %v", err)
			}
		case <-s.shutdown:
			return
		}
	}
}

func (s *FileStorage) requestSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

// Close stops the save worker and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdown)
	return s.save()
}

// --- TimeEntryRepository ---

func (s *FileStorage) SaveEntry(ctx context.Context, entry *internal.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[entry.ID]; ok {
		s.removeFromIndex(old)
	}
	s.entries[entry.ID] = entry

	idx := s.userIndex[entry.UserID]
	inserted := false
	for i, existing := range idx {
		if entry.Date < existing.Date {
			idx = append(idx[:i], append([]*internal.TimeEntry{entry}, idx[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		idx = append(idx, entry)
	}
	s.userIndex[entry.UserID] = idx

	s.requestSave()
	return nil
}

func (s *FileStorage) ListEntries(ctx context.Context, userID string) ([]internal.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.userIndex[userID]
	if !ok {
		return []internal.TimeEntry{}, nil
	}
	entries := make([]internal.TimeEntry, len(idx))
	for i, e := range idx {
		entries[i] = *e
	}
	return entries, nil
}

func (s *FileStorage) GetEntry(ctx context.Context, entryID string) (*internal.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (s *FileStorage) DeleteEntry(ctx context.Context, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil
	}
	delete(s.entries, entryID)
	s.removeFromIndex(e)
	s.requestSave()
	return nil
}

// caller must hold s.mu
func (s *FileStorage) removeFromIndex(entry *internal.TimeEntry) {
	idx := s.userIndex[entry.UserID]
	for i, e := range idx {
		if e.ID == entry.ID {
			s.userIndex[entry.UserID] = append(idx[:i], idx[i+1:]...)
			return
		}
	}
}

// --- Compile-time assertions ---
var _ TimeEntryRepository = (*FileStorage)(nil)
