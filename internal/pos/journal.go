package pos

import "time"

// SyncRecord is one local-apply/remote-sync pair in the reconciliation
// journal. Every remote write attempted by the terminal lands here, so a
// partial checkout failure can be inspected after the fact instead of
// surviving only as a toast.
type SyncRecord struct {
	Time       time.Time `json:"time"`
	Op         string    `json:"op"` // create | update | delete
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	Err        string    `json:"err,omitempty"`
}

func (t *Terminal) record(op, collection, id string, err error) {
	rec := SyncRecord{Time: time.Now(), Op: op, Collection: collection, ID: id}
	if err != nil {
		rec.Err = err.Error()
	}
	t.journal = append(t.journal, rec)
}

// Journal returns a copy of the reconciliation journal, oldest first.
func (t *Terminal) Journal() []SyncRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SyncRecord, len(t.journal))
	copy(out, t.journal)
	return out
}
