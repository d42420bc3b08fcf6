package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/momo1113/babyTracker-sub000/internal"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS feeding_logs (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	feeding_type TEXT NOT NULL,
	side         TEXT,
	amount       TEXT,
	unit         TEXT,
	duration     TEXT,
	ts           TIMESTAMPTZ NOT NULL,
	notes        TEXT,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_feeding_user_ts ON feeding_logs (user_id, ts);

CREATE TABLE IF NOT EXISTS diaper_logs (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	diaper_type TEXT NOT NULL,
	consistency TEXT,
	color       TEXT,
	ts          TIMESTAMPTZ NOT NULL,
	notes       TEXT,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_diaper_user_ts ON diaper_logs (user_id, ts);

CREATE TABLE IF NOT EXISTS sleep_logs (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time   TIMESTAMPTZ NOT NULL,
	sleep_type TEXT NOT NULL,
	location   TEXT NOT NULL,
	quality    TEXT NOT NULL,
	notes      TEXT,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sleep_user_start ON sleep_logs (user_id, start_time);

CREATE TABLE IF NOT EXISTS baby_profiles (
	user_id    TEXT PRIMARY KEY,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

type PostgresStorage struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  internal.Logger
}

func NewPostgresStorage(dsn string, timeout time.Duration, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		logger.Errorf("failed to apply schema: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, timeout: timeout, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresStorage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.timeout)
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// --- FeedingLogRepository ---

func (p *PostgresStorage) SaveFeedingLog(ctx context.Context, log *internal.FeedingLog) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, `INSERT INTO feeding_logs (id, user_id, feeding_type, side, amount, unit, duration, ts, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		log.ID, log.UserID, log.FeedingType, log.Side, log.Amount, log.Unit, log.Duration, log.Timestamp, log.Notes, log.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert feeding log: %v", err)
		return storeErr("insert feeding log", err)
	}
	return nil
}

func (p *PostgresStorage) ListFeedingLogs(ctx context.Context, userID string) ([]internal.FeedingLog, error) {
	return p.queryFeedingLogs(ctx, `SELECT id, user_id, feeding_type, side, amount, unit, duration, ts, notes, created_at FROM feeding_logs WHERE user_id = $1 ORDER BY ts DESC`, userID)
}

func (p *PostgresStorage) ListFeedingLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.FeedingLog, error) {
	return p.queryFeedingLogs(ctx, `SELECT id, user_id, feeding_type, side, amount, unit, duration, ts, notes, created_at FROM feeding_logs WHERE user_id = $1 AND ts >= $2 AND ts <= $3 ORDER BY ts`, userID, start, end)
}

func (p *PostgresStorage) queryFeedingLogs(ctx context.Context, sql string, args ...any) ([]internal.FeedingLog, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("failed to query feeding logs: %v", err)
		return nil, storeErr("query feeding logs", err)
	}
	defer rows.Close()
	logs := []internal.FeedingLog{}
	for rows.Next() {
		var l internal.FeedingLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.FeedingType, &l.Side, &l.Amount, &l.Unit, &l.Duration, &l.Timestamp, &l.Notes, &l.CreatedAt); err != nil {
			return nil, storeErr("scan feeding log", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- DiaperLogRepository ---

func (p *PostgresStorage) SaveDiaperLog(ctx context.Context, log *internal.DiaperLog) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, `INSERT INTO diaper_logs (id, user_id, diaper_type, consistency, color, ts, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID, log.UserID, log.Type, log.Consistency, log.Color, log.Timestamp, log.Notes, log.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert diaper log: %v", err)
		return storeErr("insert diaper log", err)
	}
	return nil
}

func (p *PostgresStorage) ListDiaperLogs(ctx context.Context, userID string) ([]internal.DiaperLog, error) {
	return p.queryDiaperLogs(ctx, `SELECT id, user_id, diaper_type, consistency, color, ts, notes, created_at FROM diaper_logs WHERE user_id = $1 ORDER BY ts DESC`, userID)
}

func (p *PostgresStorage) ListDiaperLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.DiaperLog, error) {
	return p.queryDiaperLogs(ctx, `SELECT id, user_id, diaper_type, consistency, color, ts, notes, created_at FROM diaper_logs WHERE user_id = $1 AND ts >= $2 AND ts <= $3 ORDER BY ts`, userID, start, end)
}

func (p *PostgresStorage) queryDiaperLogs(ctx context.Context, sql string, args ...any) ([]internal.DiaperLog, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("failed to query diaper logs: %v", err)
		return nil, storeErr("query diaper logs", err)
	}
	defer rows.Close()
	logs := []internal.DiaperLog{}
	for rows.Next() {
		var l internal.DiaperLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Type, &l.Consistency, &l.Color, &l.Timestamp, &l.Notes, &l.CreatedAt); err != nil {
			return nil, storeErr("scan diaper log", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- SleepLogRepository ---

func (p *PostgresStorage) SaveSleepLog(ctx context.Context, log *internal.SleepLog) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, `INSERT INTO sleep_logs (id, user_id, start_time, end_time, sleep_type, location, quality, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		log.ID, log.UserID, log.StartTime, log.EndTime, log.Type, log.Location, log.Quality, log.Notes, log.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert sleep log: %v", err)
		return storeErr("insert sleep log", err)
	}
	return nil
}

func (p *PostgresStorage) ListSleepLogs(ctx context.Context, userID string) ([]internal.SleepLog, error) {
	return p.querySleepLogs(ctx, `SELECT id, user_id, start_time, end_time, sleep_type, location, quality, notes, created_at FROM sleep_logs WHERE user_id = $1 ORDER BY start_time DESC`, userID)
}

func (p *PostgresStorage) ListSleepLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepLog, error) {
	return p.querySleepLogs(ctx, `SELECT id, user_id, start_time, end_time, sleep_type, location, quality, notes, created_at FROM sleep_logs WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3 ORDER BY start_time`, userID, start, end)
}

func (p *PostgresStorage) querySleepLogs(ctx context.Context, sql string, args ...any) ([]internal.SleepLog, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("failed to query sleep logs: %v", err)
		return nil, storeErr("query sleep logs", err)
	}
	defer rows.Close()
	logs := []internal.SleepLog{}
	for rows.Next() {
		var l internal.SleepLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.StartTime, &l.EndTime, &l.Type, &l.Location, &l.Quality, &l.Notes, &l.CreatedAt); err != nil {
			return nil, storeErr("scan sleep log", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- ProfileRepository ---

func (p *PostgresStorage) GetProfile(ctx context.Context, userID string) (*internal.BabyProfile, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM baby_profiles WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		p.logger.Errorf("failed to query profile: %v", err)
		return nil, storeErr("query profile", err)
	}
	var profile internal.BabyProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, storeErr("decode profile", err)
	}
	return &profile, nil
}

// MutateProfile locks the profile row for the duration of fn so
// concurrent growth edits serialize instead of losing updates.
func (p *PostgresStorage) MutateProfile(ctx context.Context, userID string, fn func(profile *internal.BabyProfile, exists bool) error) (*internal.BabyProfile, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, storeErr("begin profile update", err)
	}
	defer tx.Rollback(ctx)

	var raw []byte
	exists := true
	err = tx.QueryRow(ctx, `SELECT doc FROM baby_profiles WHERE user_id = $1 FOR UPDATE`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		exists = false
	} else if err != nil {
		return nil, storeErr("lock profile", err)
	}

	profile := &internal.BabyProfile{UserID: userID}
	if exists {
		if err := json.Unmarshal(raw, profile); err != nil {
			return nil, storeErr("decode profile", err)
		}
	}
	if err := fn(profile, exists); err != nil {
		return nil, err
	}
	profile.UserID = userID
	profile.UpdatedAt = time.Now()

	doc, err := json.Marshal(profile)
	if err != nil {
		return nil, storeErr("encode profile", err)
	}
	_, err = tx.Exec(ctx, `INSERT INTO baby_profiles (user_id, doc, updated_at) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		userID, doc, profile.UpdatedAt)
	if err != nil {
		return nil, storeErr("write profile", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("commit profile update", err)
	}
	return profile, nil
}

// --- Compile-time assertions ---
var _ FeedingLogRepository = (*PostgresStorage)(nil)
var _ DiaperLogRepository = (*PostgresStorage)(nil)
var _ SleepLogRepository = (*PostgresStorage)(nil)
var _ ProfileRepository = (*PostgresStorage)(nil)
