package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"whitepaper-portal-api/models"
)

// memoryStore is an in-memory SubmissionRepository that applies the same
// predicates as the SQL store.
type memoryStore struct {
	mu      sync.Mutex
	rows    map[string]models.Submission
	seq     int
	inserts int
	updates int
	deletes int
	failAll error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[string]models.Submission{}}
}

func (m *memoryStore) Insert(_ context.Context, sub *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return storeError("insert submission", m.failAll)
	}
	m.inserts++
	m.seq++
	sub.ID = fmt.Sprintf("sub-%d", m.seq)
	sub.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Minute)
	m.rows[sub.ID] = *sub
	return nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, storeError("find submission", m.failAll)
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}
	return &row, nil
}

func (m *memoryStore) ListRecent(_ context.Context, limit int) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, storeError("list submissions", m.failAll)
	}
	items := m.sorted(func(models.Submission) bool { return true })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *memoryStore) ListByUser(_ context.Context, userID string) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, storeError("list user submissions", m.failAll)
	}
	return m.sorted(func(s models.Submission) bool { return s.UserID == userID }), nil
}

func (m *memoryStore) UpdateContent(_ context.Context, id, userID, title, content string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	row, ok := m.rows[id]
	if !ok || row.UserID != userID || row.Status != models.StatusSubmitted {
		return 0, nil
	}
	row.Title = title
	row.WhitepaperContent = content
	m.rows[id] = row
	return 1, nil
}

func (m *memoryStore) DeleteSubmitted(_ context.Context, id, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	row, ok := m.rows[id]
	if !ok || row.UserID != userID || row.Status != models.StatusSubmitted {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

func (m *memoryStore) AdvanceStatus(_ context.Context, id string, from, to models.SubmissionStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.Status != from {
		return 0, nil
	}
	row.Status = to
	m.rows[id] = row
	return 1, nil
}

// setStatus changes a row behind the service's back, like an operator would.
func (m *memoryStore) setStatus(id string, status models.SubmissionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.rows[id]
	row.Status = status
	m.rows[id] = row
}

func (m *memoryStore) sorted(keep func(models.Submission) bool) []models.Submission {
	var items []models.Submission
	for _, row := range m.rows {
		if keep(row) {
			items = append(items, row)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []ProposalEvent
}

func (r *recordingNotifier) Notify(_ context.Context, event ProposalEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingNotifier) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
