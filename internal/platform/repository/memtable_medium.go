package repository

import (
	"FragFS/internal/platform/repository/logstore"
	"FragFS/internal/platform/utils"
)

// MemtableMedium stores snapshot blobs in a memtable.
type MemtableMedium struct {
	mt *logstore.Memtable
}

func NewMemtableMedium(mt *logstore.Memtable) *MemtableMedium {
	return &MemtableMedium{
		mt: mt,
	}
}

func (r *MemtableMedium) Save(key string, data []byte) error {
	return r.mt.Set(utils.Record{Key: key, Value: data})
}

func (r *MemtableMedium) Load(key string) ([]byte, bool, error) {
	record, found := r.mt.Get(key)
	if !found {
		return nil, false, nil
	}
	return record.Value, true, nil
}
