package server

import (
	"sync"

	"github.com/beta3zer0/go-customfields/pkg/model"
)

// RecordStore keeps demo records in memory. The widget contract excludes
// concurrent editors, but HTTP handlers run on many goroutines, so mutations
// serialize behind the write lock and readers get snapshots.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]model.Record
}

func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[string]model.Record)}
}

// Record returns a snapshot of the record for id. Unknown ids yield an empty
// record: the store materializes records on first mutation, so reading one
// that does not exist yet is just a blank form.
func (s *RecordStore) Record(id string) model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecord(s.records[id])
}

// Mutate runs fn against the live record for id, creating it when absent,
// and returns a snapshot of the result.
func (s *RecordStore) Mutate(id string, fn func(model.Record) error) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		record = model.Record{}
		s.records[id] = record
	}
	if err := fn(record); err != nil {
		return nil, err
	}
	return cloneRecord(record), nil
}

func cloneRecord(record model.Record) model.Record {
	out := make(model.Record, len(record))
	for key, value := range record {
		if entries, ok := model.EntriesValue(value); ok {
			out[key] = entries
			continue
		}
		out[key] = value
	}
	return out
}
