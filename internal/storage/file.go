package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/momo1113/babyTracker-sub000/internal"
)

// FileStorage keeps every collection in memory and persists each one to
// a JSON file in dataDir with a debounced save worker. Good enough for
// development and tests; real deployments use sqlite or postgres.
type FileStorage struct {
	feedingLogs map[string]*internal.FeedingLog // id -> log
	diaperLogs  map[string]*internal.DiaperLog
	sleepLogs   map[string]*internal.SleepLog
	profiles    map[string]*internal.BabyProfile // userID -> profile

	userFeedingIndex map[string][]*internal.FeedingLog
	userDiaperIndex  map[string][]*internal.DiaperLog
	userSleepIndex   map[string][]*internal.SleepLog

	mu           sync.RWMutex
	dir          string
	saveChan     chan struct{}
	shutdownChan chan struct{}
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileStorage(dir string, logger internal.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStorage{
		feedingLogs:      make(map[string]*internal.FeedingLog),
		diaperLogs:       make(map[string]*internal.DiaperLog),
		sleepLogs:        make(map[string]*internal.SleepLog),
		profiles:         make(map[string]*internal.BabyProfile),
		userFeedingIndex: make(map[string][]*internal.FeedingLog),
		userDiaperIndex:  make(map[string][]*internal.DiaperLog),
		userSleepIndex:   make(map[string][]*internal.SleepLog),
		dir:              dir,
		saveChan:         make(chan struct{}, 1),
		shutdownChan:     make(chan struct{}),
		saveDelay:        500 * time.Millisecond,
		logger:           logger,
	}
	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load data files: %v", err)
		return nil, err
	}
	go s.saveWorker()
	return s, nil
}

func (s *FileStorage) path(name string) string { return filepath.Join(s.dir, name) }

func readJSONFile(path string, out interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()
	if err := json.NewDecoder(file).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) load() error {
	var feedings []*internal.FeedingLog
	var diapers []*internal.DiaperLog
	var sleeps []*internal.SleepLog
	var profiles []*internal.BabyProfile
	if err := readJSONFile(s.path("feeding_logs.json"), &feedings); err != nil {
		return err
	}
	if err := readJSONFile(s.path("diaper_logs.json"), &diapers); err != nil {
		return err
	}
	if err := readJSONFile(s.path("sleep_logs.json"), &sleeps); err != nil {
		return err
	}
	if err := readJSONFile(s.path("baby_profiles.json"), &profiles); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range feedings {
		s.feedingLogs[l.ID] = l
		s.userFeedingIndex[l.UserID] = append(s.userFeedingIndex[l.UserID], l)
	}
	for _, l := range diapers {
		s.diaperLogs[l.ID] = l
		s.userDiaperIndex[l.UserID] = append(s.userDiaperIndex[l.UserID], l)
	}
	for _, l := range sleeps {
		s.sleepLogs[l.ID] = l
		s.userSleepIndex[l.UserID] = append(s.userSleepIndex[l.UserID], l)
	}
	for _, p := range profiles {
		s.profiles[p.UserID] = p
	}
	return nil
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

func (s *FileStorage) saveAll() error {
	s.mu.RLock()
	feedings := make([]*internal.FeedingLog, 0, len(s.feedingLogs))
	for _, l := range s.feedingLogs {
		feedings = append(feedings, l)
	}
	diapers := make([]*internal.DiaperLog, 0, len(s.diaperLogs))
	for _, l := range s.diaperLogs {
		diapers = append(diapers, l)
	}
	sleeps := make([]*internal.SleepLog, 0, len(s.sleepLogs))
	for _, l := range s.sleepLogs {
		sleeps = append(sleeps, l)
	}
	profiles := make([]*internal.BabyProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	s.mu.RUnlock()

	if err := atomicWriteFileJSON(s.path("feeding_logs.json"), feedings); err != nil {
		return err
	}
	if err := atomicWriteFileJSON(s.path("diaper_logs.json"), diapers); err != nil {
		return err
	}
	if err := atomicWriteFileJSON(s.path("sleep_logs.json"), sleeps); err != nil {
		return err
	}
	return atomicWriteFileJSON(s.path("baby_profiles.json"), profiles)
}

// saveWorker batches save operations to avoid frequent disk writes.
func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()
	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveAll(); err != nil {
				s.logger.Errorf("storage: error saving data files: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) signalSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

// Close stops the save worker and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	return s.saveAll()
}

// --- FeedingLogRepository ---

func (s *FileStorage) SaveFeedingLog(ctx context.Context, log *internal.FeedingLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedingLogs[log.ID] = log
	s.userFeedingIndex[log.UserID] = append(s.userFeedingIndex[log.UserID], log)
	s.signalSave()
	return nil
}

func (s *FileStorage) ListFeedingLogs(ctx context.Context, userID string) ([]internal.FeedingLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ptrs := s.userFeedingIndex[userID]
	logs := make([]internal.FeedingLog, len(ptrs))
	for i, l := range ptrs {
		logs[i] = *l
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	return logs, nil
}

func (s *FileStorage) ListFeedingLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.FeedingLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := []internal.FeedingLog{}
	for _, l := range s.userFeedingIndex[userID] {
		if inRange(l.Timestamp, start, end) {
			logs = append(logs, *l)
		}
	}
	return logs, nil
}

// --- DiaperLogRepository ---

func (s *FileStorage) SaveDiaperLog(ctx context.Context, log *internal.DiaperLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diaperLogs[log.ID] = log
	s.userDiaperIndex[log.UserID] = append(s.userDiaperIndex[log.UserID], log)
	s.signalSave()
	return nil
}

func (s *FileStorage) ListDiaperLogs(ctx context.Context, userID string) ([]internal.DiaperLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ptrs := s.userDiaperIndex[userID]
	logs := make([]internal.DiaperLog, len(ptrs))
	for i, l := range ptrs {
		logs[i] = *l
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Timestamp.After(logs[j].Timestamp) })
	return logs, nil
}

func (s *FileStorage) ListDiaperLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.DiaperLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := []internal.DiaperLog{}
	for _, l := range s.userDiaperIndex[userID] {
		if inRange(l.Timestamp, start, end) {
			logs = append(logs, *l)
		}
	}
	return logs, nil
}

// --- SleepLogRepository ---

func (s *FileStorage) SaveSleepLog(ctx context.Context, log *internal.SleepLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleepLogs[log.ID] = log
	s.userSleepIndex[log.UserID] = append(s.userSleepIndex[log.UserID], log)
	s.signalSave()
	return nil
}

func (s *FileStorage) ListSleepLogs(ctx context.Context, userID string) ([]internal.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ptrs := s.userSleepIndex[userID]
	logs := make([]internal.SleepLog, len(ptrs))
	for i, l := range ptrs {
		logs[i] = *l
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].StartTime.After(logs[j].StartTime) })
	return logs, nil
}

func (s *FileStorage) ListSleepLogsInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := []internal.SleepLog{}
	for _, l := range s.userSleepIndex[userID] {
		if inRange(l.StartTime, start, end) {
			logs = append(logs, *l)
		}
	}
	return logs, nil
}

// --- ProfileRepository ---

// cloneProfile copies the document including its growth slice, so a
// snapshot handed out (or handed to fn) never shares a backing array
// with the stored document.
func cloneProfile(p *internal.BabyProfile) *internal.BabyProfile {
	cp := *p
	cp.GrowthData = append([]internal.GrowthEntry(nil), p.GrowthData...)
	return &cp
}

func (s *FileStorage) GetProfile(ctx context.Context, userID string) (*internal.BabyProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProfile(p), nil
}

func (s *FileStorage) MutateProfile(ctx context.Context, userID string, fn func(p *internal.BabyProfile, exists bool) error) (*internal.BabyProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, exists := s.profiles[userID]
	p := &internal.BabyProfile{UserID: userID}
	if exists {
		p = cloneProfile(existing)
	}
	if err := fn(p, exists); err != nil {
		return nil, err
	}
	p.UserID = userID
	p.UpdatedAt = time.Now()
	s.profiles[userID] = p
	s.signalSave()
	return cloneProfile(p), nil
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// --- Compile-time assertions ---
var _ FeedingLogRepository = (*FileStorage)(nil)
var _ DiaperLogRepository = (*FileStorage)(nil)
var _ SleepLogRepository = (*FileStorage)(nil)
var _ ProfileRepository = (*FileStorage)(nil)
