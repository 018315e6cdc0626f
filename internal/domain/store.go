package domain

import (
	"errors"
	"fmt"
	"log"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

const (
	DefaultBlockCount = 50

	// segments at or below this length are floating point leftovers
	segmentNoise = 1e-3
	// smallest amount the compaction cursor still writes
	cursorEpsilon = 1e-4
)

// Store owns the block table and the file directory. A single mutex guards
// both; every exported method holds it for its whole duration.
type Store struct {
	mu       sync.Mutex
	capacity int
	blocks   []Block
	files    *linkedhashmap.Map // name -> *File, in directory order
	medium   PersistenceMedium
	colors   ColorSource
	version  uint64 // bumped on every state change, copied into Layout
}

func NewStore(capacity int, medium PersistenceMedium, colors ColorSource) *Store {
	if capacity <= 0 {
		capacity = DefaultBlockCount
	}
	if colors == nil {
		colors = NewRandomColorSource()
	}
	return &Store{
		capacity: capacity,
		blocks:   make([]Block, capacity),
		files:    linkedhashmap.New(),
		medium:   medium,
		colors:   colors,
	}
}

func (s *Store) Capacity() int {
	return s.capacity
}

// Create allocates size units for a new file into the first ceil(size)
// entirely free blocks and returns their indices.
func (s *Store) Create(name string, size float64) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.file(name); exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if !validSize(size) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	s.sanitize()

	indices, err := s.allocate(name, size, s.colors.Next())
	if err != nil {
		return nil, err
	}
	s.version++
	return indices, s.persist()
}

// Delete removes a file and returns how many blocks it occupied.
func (s *Store) Delete(name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, found := s.file(name)
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	freed := s.remove(f)
	s.sanitize()
	s.version++
	return freed, s.persist()
}

// Resize frees the file and allocates it again with the new size. When the
// new size does not fit, the file is allocated again at its old size and
// ErrInsufficientSpace is returned. If even that fails the store is put back
// exactly as it was and ErrInternalConsistency is returned.
func (s *Store) Resize(name string, size float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found := s.file(name)
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if !validSize(size) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	blocks, files := s.copyBlocks(), s.copyFiles()
	original := current.Copy()

	s.remove(current)
	s.sanitize()

	indices, err := s.allocate(name, size, original.Colors)
	if err == nil {
		s.version++
		return len(indices), s.persist()
	}

	if _, rollbackErr := s.allocate(name, original.Size, original.Colors); rollbackErr != nil {
		s.blocks, s.files = blocks, files
		return 0, fmt.Errorf("%w: resize %q: re-creating at size %v: %v",
			ErrInternalConsistency, name, original.Size, rollbackErr)
	}
	s.version++
	err = fmt.Errorf("resize %q to %v: %w", name, size, err)
	if persistErr := s.persist(); persistErr != nil {
		return 0, errors.Join(err, persistErr)
	}
	return 0, err
}

// Defragment lays every file out again from block 0 with no gaps between
// them. Files keep the order of their current lowest block.
func (s *Store) Defragment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.compact(s.layoutOrder())
	s.version++
	return s.persist()
}

// VolatileWipe loses the in-memory state. The persisted snapshot is kept.
func (s *Store) VolatileWipe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks = make([]Block, s.capacity)
	s.files.Clear()
	s.version++
}

// Restore replaces the directory with the persisted snapshot and rebuilds
// the blocks with the compaction walk.
func (s *Store) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found, err := s.medium.Load(SnapshotKey)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found || len(data) == 0 {
		return ErrNoBackup
	}
	snapshot, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	s.compact(snapshot.ToFiles())
	s.version++
	return s.persist()
}

func (s *Store) Sanitize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sanitize()
	s.version++
}

func (s *Store) File(name string) (File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, found := s.file(name)
	if !found {
		return File{}, false
	}
	return f.Copy(), true
}

func (s *Store) Layout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()

	layout := Layout{
		Version:    s.version,
		Capacity:   s.capacity,
		Blocks:     s.copyBlocks(),
		Files:      []File{},
		TotalUnits: float64(s.capacity),
	}
	for i := range layout.Blocks {
		layout.UsedUnits += layout.Blocks[i].Used()
	}
	for _, f := range s.fileList() {
		layout.Files = append(layout.Files, f.Copy())
	}
	return layout
}

func (s *Store) sanitize() {
	for i := range s.blocks {
		s.blocks[i].sanitize()
	}
	// drop references to blocks whose segment was removed as noise
	for _, f := range s.fileList() {
		kept := f.BlockIndices[:0]
		for _, idx := range f.BlockIndices {
			if idx >= 0 && idx < s.capacity && s.blocks[idx].Holds(f.Name) {
				kept = append(kept, idx)
			}
		}
		f.BlockIndices = kept
	}
}

// allocate writes a file into whole free blocks, first-fit. Nothing is
// written unless ceil(size) free blocks exist.
func (s *Store) allocate(name string, size float64, colors ColorPair) ([]int, error) {
	free := s.freeBlocks()
	// compared as floats, sizes past the int range must not wrap
	if math.Ceil(size) > float64(len(free)) {
		return nil, fmt.Errorf("%w: %q needs %v free blocks, %d available, try 'mend'",
			ErrInsufficientSpace, name, math.Ceil(size), len(free))
	}
	needed := int(math.Ceil(size))

	remaining := size
	indices := make([]int, 0, needed)
	for _, idx := range free[:needed] {
		write := math.Min(1, remaining)
		s.blocks[idx].Segments = append(s.blocks[idx].Segments, Segment{
			Owner:  name,
			Start:  0,
			End:    write,
			Colors: colors,
		})
		indices = append(indices, idx)
		remaining -= write
	}
	s.files.Put(name, &File{
		Name:         name,
		Size:         size,
		BlockIndices: indices,
		Colors:       colors,
	})
	return indices, nil
}

func (s *Store) remove(f *File) int {
	for _, idx := range f.BlockIndices {
		s.blocks[idx].removeOwner(f.Name)
	}
	s.files.Remove(f.Name)
	return len(f.BlockIndices)
}

// compact resets all blocks and walks a fractional cursor over them, packing
// files back to back in the given order.
func (s *Store) compact(files []File) {
	s.blocks = make([]Block, s.capacity)
	s.files.Clear()

	cursor := 0.0
	for _, f := range files {
		remaining := f.Size
		indices := []int{}
		for remaining > cursorEpsilon {
			idx := int(math.Floor(cursor))
			if idx >= s.capacity {
				log.Printf("Compaction ran out of blocks, %q truncated by %.4f units", f.Name, remaining)
				break
			}
			offset := math.Mod(cursor, 1)
			write := math.Min(remaining, 1-offset)
			if write > cursorEpsilon {
				s.blocks[idx].Segments = append(s.blocks[idx].Segments, Segment{
					Owner:  f.Name,
					Start:  offset,
					End:    offset + write,
					Colors: f.Colors,
				})
				if !slices.Contains(indices, idx) {
					indices = append(indices, idx)
				}
			}
			remaining -= write
			cursor += write
		}
		s.files.Put(f.Name, &File{
			Name:         f.Name,
			Size:         f.Size,
			BlockIndices: indices,
			Colors:       f.Colors,
		})
	}
	s.sanitize()
}

func (s *Store) persist() error {
	data, err := EncodeSnapshot(NewSnapshot(s.layoutOrder()))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.medium.Save(SnapshotKey, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// layoutOrder returns copies of the files sorted by lowest block index,
// keeping directory order between equal keys.
func (s *Store) layoutOrder() []File {
	files := s.fileList()
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].FirstBlock() < files[j].FirstBlock()
	})
	ordered := make([]File, 0, len(files))
	for _, f := range files {
		ordered = append(ordered, f.Copy())
	}
	return ordered
}

func (s *Store) freeBlocks() []int {
	var free []int
	for i := range s.blocks {
		if s.blocks[i].IsFree() {
			free = append(free, i)
		}
	}
	return free
}

func (s *Store) file(name string) (*File, bool) {
	value, found := s.files.Get(name)
	if !found {
		return nil, false
	}
	return value.(*File), true
}

func (s *Store) fileList() []*File {
	values := s.files.Values()
	files := make([]*File, 0, len(values))
	for _, value := range values {
		files = append(files, value.(*File))
	}
	return files
}

func (s *Store) copyBlocks() []Block {
	blocks := make([]Block, len(s.blocks))
	for i := range s.blocks {
		blocks[i] = s.blocks[i].Copy()
	}
	return blocks
}

func (s *Store) copyFiles() *linkedhashmap.Map {
	files := linkedhashmap.New()
	for _, f := range s.fileList() {
		c := f.Copy()
		files.Put(c.Name, &c)
	}
	return files
}
