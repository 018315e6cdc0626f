package domain

// Layout is a read-only copy of the store for presentation. Version grows
// with every change to the store, so a newer layout always has a higher one.
type Layout struct {
	Version    uint64  `json:"version"`
	Capacity   int     `json:"capacity"`
	Blocks     []Block `json:"blocks"`
	Files      []File  `json:"files"`
	UsedUnits  float64 `json:"used_units"`
	TotalUnits float64 `json:"total_units"`
}

func (l Layout) Usage() float64 {
	if l.TotalUnits == 0 {
		return 0
	}
	return l.UsedUnits / l.TotalUnits
}

func (l Layout) FreeBlocks() int {
	free := 0
	for i := range l.Blocks {
		if l.Blocks[i].IsFree() {
			free++
		}
	}
	return free
}

type LayoutPublisher interface {
	PublishLayout(layout Layout) error
}
