package ui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"hdrbar/pkg/types"
)

// Snapshot holds the layout published after every update so that other
// goroutines can read it without touching the program state
type Snapshot struct {
	mutex  sync.RWMutex
	layout types.Layout
}

// Set replaces the published layout
func (s *Snapshot) Set(layout types.Layout) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.layout = layout.Clone()
}

// Get returns a copy of the published layout
func (s *Snapshot) Get() types.Layout {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.layout.Clone()
}

// remoteMsg runs apply on the program goroutine and reports its result
type remoteMsg struct {
	apply func(m *Model) error
	reply chan error
}

// Remote drives the header from other goroutines. Changes are posted into
// the program; reads come from the snapshot.
type Remote struct {
	snapshot *Snapshot
	send     func(tea.Msg)
}

// NewRemote creates a new remote. send is usually tea.Program.Send.
func NewRemote(snapshot *Snapshot, send func(tea.Msg)) *Remote {
	return &Remote{snapshot: snapshot, send: send}
}

func (r *Remote) do(ctx context.Context, apply func(m *Model) error) error {
	reply := make(chan error, 1)
	r.send(remoteMsg{apply: apply, reply: reply})

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Layout returns the last published layout
func (r *Remote) Layout() types.Layout {
	return r.snapshot.Get()
}

// SetOrder replaces the display order
func (r *Remote) SetOrder(ctx context.Context, order []int) error {
	return r.do(ctx, func(m *Model) error {
		return m.ctrl.SetColumnsOrder(order)
	})
}

// MoveColumn moves a logical column to a display position
func (r *Remote) MoveColumn(ctx context.Context, column, position int) error {
	return r.do(ctx, func(m *Model) error {
		if column < 0 || column >= m.columns.Len() {
			return fmt.Errorf("column %d out of range", column)
		}
		m.ctrl.MoveColumn(column, position)
		return nil
	})
}

// Scroll scrolls the header and returns the resulting offset
func (r *Remote) Scroll(ctx context.Context, params types.ScrollParams) (int, error) {
	var offset int
	err := r.do(ctx, func(m *Model) error {
		if params.Offset != nil {
			m.scrollTo(*params.Offset)
		} else {
			m.scrollBy(params.Delta)
		}
		offset = m.ctrl.ScrollOffset()
		return nil
	})
	return offset, err
}
