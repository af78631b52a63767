package dispatch

import "sync"

// SyncManager guards a Manager with a read/write mutex so it can be shared
// by concurrent callers such as HTTP handlers. It only hands out RecordView
// copies; record pointers never leave the lock.
type SyncManager struct {
	mu sync.RWMutex
	m  *Manager
}

// NewSyncManager wraps m. m must not be used directly afterwards.
func NewSyncManager(m *Manager) *SyncManager {
	return &SyncManager{m: m}
}

func (s *SyncManager) Create(id ID, description string) (RecordView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.m.Create(id, description)
	if err != nil {
		return RecordView{}, err
	}
	return rec.Snapshot(), nil
}

func (s *SyncManager) Read(id ID) (RecordView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.m.Read(id)
	if !ok {
		return RecordView{}, false
	}
	return rec.Snapshot(), true
}

// Update replaces the description and returns the updated record.
func (s *SyncManager) Update(id ID, description string) (RecordView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.m.Update(id, description); err != nil {
		return RecordView{}, err
	}
	return s.m.records[id].Snapshot(), nil
}

func (s *SyncManager) Delete(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Delete(id)
}

// AddResponseTime appends a sample and returns the updated record.
func (s *SyncManager) AddResponseTime(id ID, v float64) (RecordView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.m.AddResponseTime(id, v); err != nil {
		return RecordView{}, err
	}
	return s.m.records[id].Snapshot(), nil
}

func (s *SyncManager) List() []RecordView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.m.List()
	out := make([]RecordView, len(recs))
	for i, r := range recs {
		out[i] = r.Snapshot()
	}
	return out
}

func (s *SyncManager) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Len()
}
