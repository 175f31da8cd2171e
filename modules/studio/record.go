package studio

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status - 생성 요청 상태
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrRecordSettled  = errors.New("record already settled")
)

// Record is one generation attempt as the client sees it.
type Record struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Status    Status    `json:"status"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settled reports whether the record reached a terminal status.
func (r Record) Settled() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// RecordBook holds the session's records keyed by id. Insertion order is kept
// for display; records are never removed.
type RecordBook struct {
	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

func NewRecordBook() *RecordBook {
	return &RecordBook{records: make(map[string]*Record)}
}

// Add creates a pending record with a time-ordered id.
func (b *RecordBook) Add(prompt string, now time.Time) Record {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	rec := &Record{
		ID:        id.String(),
		Prompt:    prompt,
		Status:    StatusPending,
		CreatedAt: now,
	}

	b.mu.Lock()
	b.records[rec.ID] = rec
	b.order = append(b.order, rec.ID)
	b.mu.Unlock()

	return *rec
}

// Complete moves a pending record to completed.
func (b *RecordBook) Complete(id, videoURL string) (Record, error) {
	return b.settle(id, func(r *Record) {
		r.Status = StatusCompleted
		r.VideoURL = videoURL
	})
}

// Fail moves a pending record to failed.
func (b *RecordBook) Fail(id, message string) (Record, error) {
	return b.settle(id, func(r *Record) {
		r.Status = StatusFailed
		r.Error = message
	})
}

func (b *RecordBook) settle(id string, apply func(*Record)) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.records[id]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	if rec.Settled() {
		return *rec, ErrRecordSettled
	}
	apply(rec)
	return *rec, nil
}

func (b *RecordBook) Get(id string) (Record, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Snapshot returns copies of all records, newest first.
func (b *RecordBook) Snapshot() []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Record, 0, len(b.order))
	for i := len(b.order) - 1; i >= 0; i-- {
		out = append(out, *b.records[b.order[i]])
	}
	return out
}

// Pending counts records still awaiting a response.
func (b *RecordBook) Pending() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, rec := range b.records {
		if rec.Status == StatusPending {
			n++
		}
	}
	return n
}

func (b *RecordBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
