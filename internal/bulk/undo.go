package bulk

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultUndoDepth is how many stock changes stay undoable.
const DefaultUndoDepth = 10

type Operation string

const (
	OpMarkOutOfStock Operation = "mark_out_of_stock"
	OpMarkInStock    Operation = "mark_in_stock"
)

func stockOperation(outOfStock bool) Operation {
	if outOfStock {
		return OpMarkOutOfStock
	}

	return OpMarkInStock
}

// Snapshot is a product's out_of_stock value before a stock change.
type Snapshot struct {
	ID         int64 `json:"id"`
	OutOfStock bool  `json:"out_of_stock"`
}

type UndoRecord struct {
	ID        uuid.UUID  `json:"id"`
	Operation Operation  `json:"operation"`
	CreatedAt time.Time  `json:"created_at"`
	Entries   []Snapshot `json:"entries"`
}

// UndoStack keeps the most recent records, newest on top.
type UndoStack struct {
	mu      sync.Mutex
	depth   int
	records []UndoRecord
}

func NewUndoStack(depth int) *UndoStack {
	if depth <= 0 {
		depth = DefaultUndoDepth
	}

	return &UndoStack{depth: depth, records: make([]UndoRecord, 0, depth)}
}

// Push adds rec on top and evicts the oldest record beyond the depth.
func (s *UndoStack) Push(rec UndoRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if over := len(s.records) - s.depth; over > 0 {
		s.records = append(s.records[:0:0], s.records[over:]...)
	}
}

func (s *UndoStack) Peek() (UndoRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return UndoRecord{}, false
	}

	return s.records[len(s.records)-1], true
}

// Pop removes the top record if it is still the one identified by id.
func (s *UndoStack) Pop(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	if n == 0 || s.records[n-1].ID != id {
		return false
	}

	s.records = s.records[:n-1]

	return true
}

// ReplaceTop swaps the top record for rec when their ids match.
func (s *UndoStack) ReplaceTop(rec UndoRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.records)
	if n == 0 || s.records[n-1].ID != rec.ID {
		return false
	}

	s.records[n-1] = rec

	return true
}

func (s *UndoStack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Records returns a copy of the stack, newest first.
func (s *UndoStack) Records() []UndoRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]UndoRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i])
	}

	return out
}
