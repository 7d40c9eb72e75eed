package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iSadist/chronos/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- TimeEntryRepository ---

func (p *PostgresStorage) SaveEntry(ctx context.Context, entry *internal.TimeEntry) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO time_entries (entry_id, client_id, user_id, date, duration) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.ClientID, entry.UserID, entry.Date, entry.Duration)
	if err != nil {
		p.logger.Errorf("failed to insert time entry: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListEntries(ctx context.Context, userID string) ([]internal.TimeEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT entry_id, client_id, user_id, date, duration FROM time_entries WHERE user_id = $1 ORDER BY date ASC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query time entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []internal.TimeEntry
	for rows.Next() {
		var e internal.TimeEntry
		err := rows.Scan(&e.ID, &e.ClientID, &e.UserID, &e.Date, &e.Duration)
		if err != nil {
			p.logger.Errorf("failed to scan time entry: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (p *PostgresStorage) GetEntry(ctx context.Context, entryID string) (*internal.TimeEntry, error) {
	row := p.pool.QueryRow(ctx, `SELECT entry_id, client_id, user_id, date, duration FROM time_entries WHERE entry_id = $1`, entryID)
	var e internal.TimeEntry
	if err := row.Scan(&e.ID, &e.ClientID, &e.UserID, &e.Date, &e.Duration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		p.logger.Errorf("failed to get time entry: %v", err)
		return nil, err
	}
	return &e, nil
}

func (p *PostgresStorage) DeleteEntry(ctx context.Context, entryID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM time_entries WHERE entry_id = $1`, entryID)
	if err != nil {
		p.logger.Errorf("failed to delete time entry: %v", err)
		return err
	}
	return nil
}

// --- UserRepository ---

func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name FROM users WHERE token = $1`, token)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name); err != nil {
		p.logger.Errorf("user not found: %v", err)
		return nil, err
	}
	return &u, nil
}

// --- Compile-time assertions ---
var _ TimeEntryRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
