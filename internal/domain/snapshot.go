package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"
)

// SnapshotKey is the single medium key holding the file directory.
const SnapshotKey = "fs_backup_split"

type SnapshotFile struct {
	Name         string  `json:"name"`
	Size         float64 `json:"size"`
	HuePrimary   int     `json:"hue1"`
	HueSecondary int     `json:"hue2"`
}

// Snapshot is the persisted file directory. Block placement is not part of it.
type Snapshot struct {
	Id      string         `json:"id"`
	SavedAt int64          `json:"saved_at"`
	Files   []SnapshotFile `json:"files"`
}

func NewSnapshot(files []File) Snapshot {
	entries := make([]SnapshotFile, 0, len(files))
	for _, f := range files {
		entries = append(entries, SnapshotFile{
			Name:         f.Name,
			Size:         f.Size,
			HuePrimary:   f.Colors.Primary,
			HueSecondary: f.Colors.Secondary,
		})
	}
	return Snapshot{
		Id:      uuid.NewString(),
		SavedAt: time.Now().UnixNano(),
		Files:   entries,
	}
}

// ToFiles returns the directory entries in snapshot order, without blocks.
func (s Snapshot) ToFiles() []File {
	files := make([]File, 0, len(s.Files))
	for _, entry := range s.Files {
		files = append(files, File{
			Name: entry.Name,
			Size: entry.Size,
			Colors: ColorPair{
				Primary:   entry.HuePrimary,
				Secondary: entry.HueSecondary,
			},
		})
	}
	return files
}

func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	seen := make(map[string]struct{}, len(s.Files))
	for _, entry := range s.Files {
		if _, dup := seen[entry.Name]; dup {
			return Snapshot{}, fmt.Errorf("%w: duplicate file %q", ErrCorruptSnapshot, entry.Name)
		}
		if !validSize(entry.Size) {
			return Snapshot{}, fmt.Errorf("%w: file %q has size %v", ErrCorruptSnapshot, entry.Name, entry.Size)
		}
		seen[entry.Name] = struct{}{}
	}
	return s, nil
}
