package domain

import (
	"math"
	"sort"
)

// Segment is the part of one block occupied by one file. Start and End are
// fractions of the block's capacity.
type Segment struct {
	Owner  string    `json:"owner"`
	Start  float64   `json:"start"`
	End    float64   `json:"end"`
	Colors ColorPair `json:"colors"`
}

func (s Segment) Length() float64 {
	return s.End - s.Start
}

type Block struct {
	Segments []Segment `json:"segments"`
}

func (b *Block) IsFree() bool {
	return len(b.Segments) == 0
}

func (b *Block) Used() float64 {
	used := 0.0
	for _, seg := range b.Segments {
		used += seg.Length()
	}
	return used
}

func (b *Block) Holds(owner string) bool {
	for _, seg := range b.Segments {
		if seg.Owner == owner {
			return true
		}
	}
	return false
}

func (b *Block) Copy() Block {
	if b.Segments == nil {
		return Block{}
	}
	segments := make([]Segment, len(b.Segments))
	copy(segments, b.Segments)
	return Block{Segments: segments}
}

func (b *Block) removeOwner(owner string) {
	kept := b.Segments[:0]
	for _, seg := range b.Segments {
		if seg.Owner != owner {
			kept = append(kept, seg)
		}
	}
	b.Segments = kept
}

// sanitize clamps bounds, drops noise and orders segments by start offset.
// Clamping runs first so a second pass never finds anything left to change.
func (b *Block) sanitize() {
	kept := b.Segments[:0]
	for _, seg := range b.Segments {
		seg.Start = math.Max(seg.Start, 0)
		seg.End = math.Min(seg.End, 1)
		if seg.Length() <= segmentNoise {
			continue
		}
		kept = append(kept, seg)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Start < kept[j].Start
	})
	b.Segments = kept
}
