package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/momo1113/babyTracker-sub000/internal"
)

// Instants are stored as unix milliseconds so range comparisons stay
// integer comparisons regardless of zone.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS feeding_logs (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		feeding_type TEXT NOT NULL,
		side         TEXT NOT NULL DEFAULT '',
		amount       TEXT NOT NULL DEFAULT '',
		unit         TEXT NOT NULL DEFAULT '',
		duration     TEXT NOT NULL DEFAULT '',
		ts           INTEGER NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		created_at   INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_feeding_user_ts ON feeding_logs (user_id, ts)`,
	`CREATE TABLE IF NOT EXISTS diaper_logs (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		diaper_type TEXT NOT NULL,
		consistency TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '',
		ts          INTEGER NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_diaper_user_ts ON diaper_logs (user_id, ts)`,
	`CREATE TABLE IF NOT EXISTS sleep_logs (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		start_time INTEGER NOT NULL,
		end_time   INTEGER NOT NULL,
		sleep_type TEXT NOT NULL,
		location   TEXT NOT NULL,
		quality    TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sleep_user_start ON sleep_logs (user_id, start_time)`,
	`CREATE TABLE IF NOT EXISTS baby_profiles (
		user_id    TEXT PRIMARY KEY,
		doc        TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
}

type SQLiteStorage struct {
	db      *sql.DB
	timeout time.Duration
	logger  internal.Logger

	insertFeeding *sql.Stmt
	insertDiaper  *sql.Stmt
	insertSleep   *sql.Stmt
}

func NewSQLiteStorage(path string, timeout time.Duration, logger internal.Logger) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}
	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			logger.Errorf("failed to apply sqlite schema: %v", err)
			return nil, err
		}
	}
	s := &SQLiteStorage{db: db, timeout: timeout, logger: logger}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) prepareStatements() error {
	var err error
	s.insertFeeding, err = s.db.Prepare(`INSERT INTO feeding_logs (id, user_id, feeding_type, side, amount, unit, duration, ts, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	s.insertDiaper, err = s.db.Prepare(`INSERT INTO diaper_logs (id, user_id, diaper_type, consistency, color, ts, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	s.insertSleep, err = s.db.Prepare(`INSERT INTO sleep_logs (id, user_id, start_time, end_time, sleep_type, location, quality, notes, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	return err
}

func (s *SQLiteStorage) Close() error { return s.db.Close() }

func (s *SQLiteStorage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// --- FeedingLogRepository ---

func (s *SQLiteStorage) SaveFeedingLog(ctx context.Context, log *internal.FeedingLog) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.insertFeeding.ExecContext(ctx,
		log.ID, log.UserID, log.FeedingType, log.Side, log.Amount, log.Unit, log.Duration,
		log.Timestamp.UnixMilli(), log.Notes, log.CreatedAt.UnixMilli())
	if err != nil {
		s.logger.Errorf("failed to insert feeding log: %v", err)
		return storeErr("insert feeding log", err)
	}
	return nil
}

func (s *SQLiteStorage) ListFeedingLogs(ctx context.Context, userID string) ([]internal.FeedingLog, error) {
	return s.queryFeedingLogs(ctx, `SELECT id, user_id, feeding_type, side, amount, unit, duration, ts, notes, created_at FROM feeding_logs WHERE user_id = ? ORDER BY ts DESC`, userID)
}

func (s *SQLiteStorage) ListFeedingLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.FeedingLog, error) {
	return s.queryFeedingLogs(ctx, `SELECT id, user_id, feeding_type, side, amount, unit, duration, ts, notes, created_at FROM feeding_logs WHERE user_id = ? AND ts >= ? AND ts <= ? ORDER BY ts`,
		userID, start.UnixMilli(), end.UnixMilli())
}

func (s *SQLiteStorage) queryFeedingLogs(ctx context.Context, query string, args ...any) ([]internal.FeedingLog, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Errorf("failed to query feeding logs: %v", err)
		return nil, storeErr("query feeding logs", err)
	}
	defer rows.Close()
	logs := []internal.FeedingLog{}
	for rows.Next() {
		var l internal.FeedingLog
		var ts, created int64
		if err := rows.Scan(&l.ID, &l.UserID, &l.FeedingType, &l.Side, &l.Amount, &l.Unit, &l.Duration, &ts, &l.Notes, &created); err != nil {
			return nil, storeErr("scan feeding log", err)
		}
		l.Timestamp = time.UnixMilli(ts)
		l.CreatedAt = time.UnixMilli(created)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- DiaperLogRepository ---

func (s *SQLiteStorage) SaveDiaperLog(ctx context.Context, log *internal.DiaperLog) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.insertDiaper.ExecContext(ctx,
		log.ID, log.UserID, log.Type, log.Consistency, log.Color,
		log.Timestamp.UnixMilli(), log.Notes, log.CreatedAt.UnixMilli())
	if err != nil {
		s.logger.Errorf("failed to insert diaper log: %v", err)
		return storeErr("insert diaper log", err)
	}
	return nil
}

func (s *SQLiteStorage) ListDiaperLogs(ctx context.Context, userID string) ([]internal.DiaperLog, error) {
	return s.queryDiaperLogs(ctx, `SELECT id, user_id, diaper_type, consistency, color, ts, notes, created_at FROM diaper_logs WHERE user_id = ? ORDER BY ts DESC`, userID)
}

func (s *SQLiteStorage) ListDiaperLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.DiaperLog, error) {
	return s.queryDiaperLogs(ctx, `SELECT id, user_id, diaper_type, consistency, color, ts, notes, created_at FROM diaper_logs WHERE user_id = ? AND ts >= ? AND ts <= ? ORDER BY ts`,
		userID, start.UnixMilli(), end.UnixMilli())
}

func (s *SQLiteStorage) queryDiaperLogs(ctx context.Context, query string, args ...any) ([]internal.DiaperLog, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Errorf("failed to query diaper logs: %v", err)
		return nil, storeErr("query diaper logs", err)
	}
	defer rows.Close()
	logs := []internal.DiaperLog{}
	for rows.Next() {
		var l internal.DiaperLog
		var ts, created int64
		if err := rows.Scan(&l.ID, &l.UserID, &l.Type, &l.Consistency, &l.Color, &ts, &l.Notes, &created); err != nil {
			return nil, storeErr("scan diaper log", err)
		}
		l.Timestamp = time.UnixMilli(ts)
		l.CreatedAt = time.UnixMilli(created)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- SleepLogRepository ---

func (s *SQLiteStorage) SaveSleepLog(ctx context.Context, log *internal.SleepLog) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err := s.insertSleep.ExecContext(ctx,
		log.ID, log.UserID, log.StartTime.UnixMilli(), log.EndTime.UnixMilli(),
		log.Type, log.Location, log.Quality, log.Notes, log.CreatedAt.UnixMilli())
	if err != nil {
		s.logger.Errorf("failed to insert sleep log: %v", err)
		return storeErr("insert sleep log", err)
	}
	return nil
}

func (s *SQLiteStorage) ListSleepLogs(ctx context.Context, userID string) ([]internal.SleepLog, error) {
	return s.querySleepLogs(ctx, `SELECT id, user_id, start_time, end_time, sleep_type, location, quality, notes, created_at FROM sleep_logs WHERE user_id = ? ORDER BY start_time DESC`, userID)
}

func (s *SQLiteStorage) ListSleepLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepLog, error) {
	return s.querySleepLogs(ctx, `SELECT id, user_id, start_time, end_time, sleep_type, location, quality, notes, created_at FROM sleep_logs WHERE user_id = ? AND start_time >= ? AND start_time <= ? ORDER BY start_time`,
		userID, start.UnixMilli(), end.UnixMilli())
}

func (s *SQLiteStorage) querySleepLogs(ctx context.Context, query string, args ...any) ([]internal.SleepLog, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Errorf("failed to query sleep logs: %v", err)
		return nil, storeErr("query sleep logs", err)
	}
	defer rows.Close()
	logs := []internal.SleepLog{}
	for rows.Next() {
		var l internal.SleepLog
		var startMs, endMs, created int64
		if err := rows.Scan(&l.ID, &l.UserID, &startMs, &endMs, &l.Type, &l.Location, &l.Quality, &l.Notes, &created); err != nil {
			return nil, storeErr("scan sleep log", err)
		}
		l.StartTime = time.UnixMilli(startMs)
		l.EndTime = time.UnixMilli(endMs)
		l.CreatedAt = time.UnixMilli(created)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// --- ProfileRepository ---

func (s *SQLiteStorage) GetProfile(ctx context.Context, userID string) (*internal.BabyProfile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM baby_profiles WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Errorf("failed to query profile: %v", err)
		return nil, storeErr("query profile", err)
	}
	var profile internal.BabyProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, storeErr("decode profile", err)
	}
	return &profile, nil
}

func (s *SQLiteStorage) MutateProfile(ctx context.Context, userID string, fn func(profile *internal.BabyProfile, exists bool) error) (*internal.BabyProfile, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("begin profile update", err)
	}
	defer tx.Rollback()

	var raw string
	exists := true
	err = tx.QueryRowContext(ctx, `SELECT doc FROM baby_profiles WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		exists = false
	} else if err != nil {
		return nil, storeErr("read profile", err)
	}

	profile := &internal.BabyProfile{UserID: userID}
	if exists {
		if err := json.Unmarshal([]byte(raw), profile); err != nil {
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
	_, err = tx.ExecContext(ctx, `INSERT INTO baby_profiles (user_id, doc, updated_at) VALUES (?, ?, ?) ON CONFLICT (user_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		userID, string(doc), profile.UpdatedAt.UnixMilli())
	if err != nil {
		return nil, storeErr("write profile", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storeErr("commit profile update", err)
	}
	return profile, nil
}

// --- Compile-time assertions ---
var _ FeedingLogRepository = (*SQLiteStorage)(nil)
var _ DiaperLogRepository = (*SQLiteStorage)(nil)
var _ SleepLogRepository = (*SQLiteStorage)(nil)
var _ ProfileRepository = (*SQLiteStorage)(nil)
