package dispatch

import (
	"sort"
	"time"

	"github.com/kilianp07/dispatchrec/core/logger"
	"github.com/kilianp07/dispatchrec/core/metrics"
)

// Manager keeps dispatch records keyed by id. It performs no locking and is
// meant to be driven by a single goroutine; see SyncManager for shared use.
type Manager struct {
	records map[ID]*Record
	logger  logger.Logger
	metrics metrics.Sink
	events  EventPublisher
	now     func() time.Time
}

// NewManager returns an empty manager. A nil logger disables logging.
func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop{}
	}
	return &Manager{
		records: make(map[ID]*Record),
		logger:  log,
		metrics: metrics.NopSink{},
		now:     time.Now,
	}
}

// SetMetrics configures the sink receiving operation and sample events.
func (m *Manager) SetMetrics(sink metrics.Sink) {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	m.metrics = sink
}

// SetEventPublisher configures where lifecycle events are published. Nil
// disables publishing.
func (m *Manager) SetEventPublisher(p EventPublisher) { m.events = p }

// Create inserts a record with an empty sample list. An existing record with
// the same id is left untouched and ErrDuplicateKey is returned.
func (m *Manager) Create(id ID, description string) (*Record, error) {
	if _, ok := m.records[id]; ok {
		m.observe(metrics.OpCreate, id, metrics.OutcomeDuplicate)
		return nil, duplicateKey(id)
	}
	rec := newRecord(id, description)
	m.records[id] = rec
	m.observe(metrics.OpCreate, id, metrics.OutcomeOK)
	m.recordCount()

	ev := newEvent(EventCreated, id, m.now())
	ev.Description = description
	m.publish(ev)
	return rec, nil
}

// Read returns the record for id. The boolean is false when it does not exist.
func (m *Manager) Read(id ID) (*Record, bool) {
	rec, ok := m.records[id]
	if !ok {
		m.observe(metrics.OpRead, id, metrics.OutcomeMiss)
		return nil, false
	}
	m.observe(metrics.OpRead, id, metrics.OutcomeOK)
	return rec, true
}

// Update replaces the description of an existing record. Samples are kept.
func (m *Manager) Update(id ID, description string) error {
	rec, ok := m.records[id]
	if !ok {
		m.observe(metrics.OpUpdate, id, metrics.OutcomeNotFound)
		return notFound(id)
	}
	rec.description = description
	m.observe(metrics.OpUpdate, id, metrics.OutcomeOK)

	ev := newEvent(EventUpdated, id, m.now())
	ev.Description = description
	m.publish(ev)
	return nil
}

// Delete removes the record for id.
func (m *Manager) Delete(id ID) error {
	if _, ok := m.records[id]; !ok {
		m.observe(metrics.OpDelete, id, metrics.OutcomeNotFound)
		return notFound(id)
	}
	delete(m.records, id)
	m.observe(metrics.OpDelete, id, metrics.OutcomeOK)
	m.recordCount()
	m.publish(newEvent(EventDeleted, id, m.now()))
	return nil
}

// AddResponseTime appends a sample to the record for id. Unlike calling
// Record.AddResponseTime directly, the sample is reported to the metrics
// sink and the event publisher.
func (m *Manager) AddResponseTime(id ID, v float64) error {
	rec, ok := m.records[id]
	if !ok {
		m.observe(metrics.OpAddResponseTime, id, metrics.OutcomeNotFound)
		return notFound(id)
	}
	rec.AddResponseTime(v)
	at := m.now()
	m.observe(metrics.OpAddResponseTime, id, metrics.OutcomeOK)
	if err := m.metrics.RecordResponseTime(metrics.ResponseTimeEvent{
		Scope:      metrics.ScopeDispatch,
		DispatchID: int(id),
		Value:      v,
		Time:       at,
	}); err != nil {
		m.logger.Warnf("record response time for dispatch %d: %v", id, err)
	}

	ev := newEvent(EventResponseTime, id, at)
	ev.Value = &v
	m.publish(ev)
	return nil
}

// List returns every record ordered by id.
func (m *Manager) List() []*Record {
	out := make([]*Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Len returns the number of records.
func (m *Manager) Len() int { return len(m.records) }

func (m *Manager) observe(op metrics.Operation, id ID, outcome metrics.Outcome) {
	m.logger.Debugw("dispatch operation", map[string]any{
		"operation":   string(op),
		"dispatch_id": int(id),
		"outcome":     string(outcome),
	})
	if err := m.metrics.RecordOperation(metrics.OperationEvent{
		Operation:  op,
		DispatchID: int(id),
		Outcome:    outcome,
		Time:       m.now(),
	}); err != nil {
		m.logger.Warnf("record %s metric: %v", op, err)
	}
}

func (m *Manager) recordCount() {
	rc, ok := m.metrics.(metrics.RecordCountRecorder)
	if !ok {
		return
	}
	if err := rc.RecordCount(len(m.records)); err != nil {
		m.logger.Warnf("record count metric: %v", err)
	}
}

func (m *Manager) publish(ev Event) {
	if m.events != nil {
		m.events.Publish(ev)
	}
}
