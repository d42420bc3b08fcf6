package storage

import (
	"io"
	"time"

	"github.com/momo1113/babyTracker-sub000/internal"
)

// Repositories bundles the per-collection repositories served by one
// backend.
type Repositories struct {
	Feeding FeedingLogRepository
	Diaper  DiaperLogRepository
	Sleep   SleepLogRepository
	Profile ProfileRepository

	closer io.Closer
}

func (r *Repositories) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func NewFileRepositories(dataDir string, logger internal.Logger) (*Repositories, error) {
	s, err := NewFileStorage(dataDir, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Feeding: s, Diaper: s, Sleep: s, Profile: s, closer: s}, nil
}

func NewSQLiteRepositories(path string, timeout time.Duration, logger internal.Logger) (*Repositories, error) {
	s, err := NewSQLiteStorage(path, timeout, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Feeding: s, Diaper: s, Sleep: s, Profile: s, closer: s}, nil
}

func NewPostgresRepositories(dsn string, timeout time.Duration, logger internal.Logger) (*Repositories, error) {
	s, err := NewPostgresStorage(dsn, timeout, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Feeding: s, Diaper: s, Sleep: s, Profile: s, closer: s}, nil
}
