package domain

// PersistenceMedium is an opaque key/value byte store. Load reports found=false
// when nothing was ever saved under key.
type PersistenceMedium interface {
	Save(key string, data []byte) error
	Load(key string) (data []byte, found bool, err error)
}
