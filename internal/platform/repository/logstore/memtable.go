package logstore

import (
	"FragFS/internal/platform/utils"
	"log"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
)

// DefaultWalLimit is the log size past which the memtable rewrites the log
// down to its current records.
const DefaultWalLimit int64 = 1 << 20

// Memtable keeps the latest value per key in a sorted map. With a WAL every
// Set is appended to the log before it becomes visible, and the log is
// replayed when the memtable is created.
type Memtable struct {
	mu       sync.RWMutex
	records  *treemap.Map // key -> utils.Record
	wal      *WAL
	walLimit int64
}

// NewMemtable builds a memtable over wal, which may be nil for a purely
// in-memory table.
func NewMemtable(wal *WAL) (*Memtable, error) {
	mt := &Memtable{
		records:  treemap.NewWithStringComparator(),
		wal:      wal,
		walLimit: DefaultWalLimit,
	}
	if wal == nil {
		return mt, nil
	}
	records, err := wal.Read()
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		mt.records.Put(record.Key, record)
	}
	log.Printf("Memtable replayed %d records from %s", len(records), wal.Path())
	return mt, nil
}

func (mt *Memtable) Set(record utils.Record) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.wal != nil {
		if err := mt.wal.Write(record); err != nil {
			return err
		}
	}
	mt.records.Put(record.Key, copyRecord(record))
	if mt.wal != nil {
		mt.compactWal()
	}
	return nil
}

func (mt *Memtable) Get(key string) (utils.Record, bool) {
	mt.mu.RLock()
	defer mt.mu.RUnlock()

	value, found := mt.records.Get(key)
	if !found {
		return utils.Record{}, false
	}
	return copyRecord(value.(utils.Record)), true
}

func (mt *Memtable) Len() int {
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	return mt.records.Size()
}

// compactWal rewrites the log down to one record per key once it has grown
// past walLimit. A failed rewrite leaves the old log in use, which still
// replays to the same state, so it is only logged.
func (mt *Memtable) compactWal() {
	size, err := mt.wal.Size()
	if err != nil || size <= mt.walLimit {
		return
	}
	values := mt.records.Values()
	records := make([]utils.Record, 0, len(values))
	for _, value := range values {
		records = append(records, value.(utils.Record))
	}
	if err := mt.wal.Rewrite(records); err != nil {
		log.Println("Failed to compact wal:", err)
		return
	}
	log.Printf("Compacted %s from %d bytes to %d records", mt.wal.Path(), size, len(records))
}

func copyRecord(r utils.Record) utils.Record {
	value := make([]byte, len(r.Value))
	copy(value, r.Value)
	return utils.Record{Key: r.Key, Value: value}
}
