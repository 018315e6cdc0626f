package domain

import (
	"math/rand"
	"sync"
	"time"
)

// hue offset between the two shades of a file
const secondaryHueShift = 15

type ColorPair struct {
	Primary   int `json:"primary"`
	Secondary int `json:"secondary"`
}

// NewColorPair derives the secondary hue from the primary one.
func NewColorPair(hue int) ColorPair {
	hue = ((hue % 360) + 360) % 360
	return ColorPair{
		Primary:   hue,
		Secondary: (hue + secondaryHueShift) % 360,
	}
}

type ColorSource interface {
	Next() ColorPair
}

type RandomColorSource struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewRandomColorSource() *RandomColorSource {
	return &RandomColorSource{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *RandomColorSource) Next() ColorPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return NewColorPair(c.rand.Intn(360))
}
