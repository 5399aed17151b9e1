package model

import (
	"image"
	"sync"
)

// SelectionModel holds the screen region to record in global coordinates.
// An empty rectangle means the whole screen. It is read by the capture
// goroutine on every tick, hence the lock.
type SelectionModel struct {
	mu     sync.RWMutex
	region image.Rectangle
}

func NewSelectionModel(r image.Rectangle) *SelectionModel {
	m := &SelectionModel{}
	m.Set(r)
	return m
}

// Set stores r. Rectangles without area clear the selection.
func (m *SelectionModel) Set(r image.Rectangle) {
	if m == nil {
		return
	}
	r = r.Canon()
	if r.Empty() {
		r = image.Rectangle{}
	}
	m.mu.Lock()
	m.region = r
	m.mu.Unlock()
}

func (m *SelectionModel) Clear() { m.Set(image.Rectangle{}) }

// Region returns the current rectangle (may be empty).
func (m *SelectionModel) Region() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.region
}
