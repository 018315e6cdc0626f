package message

import (
	"FragFS/internal/domain"
	"time"

	"github.com/google/uuid"
)

const LayoutTopic = "layout"

type LayoutMessage struct {
	Id         string         `json:"id"`
	Timestamp  int64          `json:"timestamp"`
	Version    uint64         `json:"version"`
	Capacity   int            `json:"capacity"`
	UsedUnits  float64        `json:"used_units"`
	TotalUnits float64        `json:"total_units"`
	Blocks     []domain.Block `json:"blocks"`
	Files      []domain.File  `json:"files"`
}

func LayoutMessageFrom(layout domain.Layout) LayoutMessage {
	return LayoutMessage{
		Id:         uuid.NewString(),
		Timestamp:  time.Now().UnixNano(),
		Version:    layout.Version,
		Capacity:   layout.Capacity,
		UsedUnits:  layout.UsedUnits,
		TotalUnits: layout.TotalUnits,
		Blocks:     layout.Blocks,
		Files:      layout.Files,
	}
}

func (m *LayoutMessage) ToLayout() domain.Layout {
	return domain.Layout{
		Version:    m.Version,
		Capacity:   m.Capacity,
		Blocks:     m.Blocks,
		Files:      m.Files,
		UsedUnits:  m.UsedUnits,
		TotalUnits: m.TotalUnits,
	}
}
