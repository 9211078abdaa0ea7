package rpc

import (
	"context"
	"fmt"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"

	"hdrbar/internal/events"
	"hdrbar/pkg/types"
)

// Method names served by the header service
const (
	MethodGetOrder   = "header.getOrder"
	MethodSetOrder   = "header.setOrder"
	MethodMoveColumn = "header.moveColumn"
	MethodScroll     = "header.scroll"
	MethodLayout     = "header.layout"
	MethodHistory    = "header.history"

	// NotifyEvent is pushed to every client for each header notification
	NotifyEvent = "header.event"
)

// Header is the remotely controllable header. Implementations are called
// from connection goroutines and must be safe for concurrent use.
type Header interface {
	Layout() types.Layout
	SetOrder(ctx context.Context, order []int) error
	MoveColumn(ctx context.Context, column, position int) error
	Scroll(ctx context.Context, params types.ScrollParams) (int, error)
}

// Service exposes a Header over JSON-RPC
type Service struct {
	header  Header
	history *events.History
}

// NewService creates a new header service. history may be nil.
func NewService(h Header, history *events.History) *Service {
	return &Service{header: h, history: history}
}

// Assigner returns the method table for a jrpc2 server
func (s *Service) Assigner() jrpc2.Assigner {
	return handler.Map{
		MethodGetOrder:   handler.New(s.getOrder),
		MethodSetOrder:   handler.New(s.setOrder),
		MethodMoveColumn: handler.New(s.moveColumn),
		MethodScroll:     handler.New(s.scroll),
		MethodLayout:     handler.New(s.layout),
		MethodHistory:    handler.New(s.historyRecords),
	}
}

func (s *Service) getOrder(ctx context.Context) (types.OrderResult, error) {
	return types.OrderResult{Order: s.header.Layout().Order}, nil
}

func (s *Service) setOrder(ctx context.Context, p types.OrderParams) (types.OrderResult, error) {
	if err := s.header.SetOrder(ctx, p.Order); err != nil {
		return types.OrderResult{}, fmt.Errorf("set order: %w", err)
	}
	return types.OrderResult{Order: s.header.Layout().Order}, nil
}

func (s *Service) moveColumn(ctx context.Context, p types.MoveParams) (types.OrderResult, error) {
	if err := s.header.MoveColumn(ctx, p.Column, p.Position); err != nil {
		return types.OrderResult{}, fmt.Errorf("move column: %w", err)
	}
	return types.OrderResult{Order: s.header.Layout().Order}, nil
}

func (s *Service) scroll(ctx context.Context, p types.ScrollParams) (int, error) {
	return s.header.Scroll(ctx, p)
}

func (s *Service) layout(ctx context.Context) (types.Layout, error) {
	return s.header.Layout(), nil
}

func (s *Service) historyRecords(ctx context.Context, p types.HistoryParams) ([]types.EventRecord, error) {
	if s.history == nil {
		return []types.EventRecord{}, nil
	}

	var records []events.Record
	if p.Limit > 0 {
		records = s.history.Recent(p.Limit)
	} else {
		records = s.history.All()
	}

	out := make([]types.EventRecord, len(records))
	for i, rec := range records {
		out[i] = EventRecord(rec)
	}
	return out, nil
}

// EventRecord converts a dispatcher record to its wire form
func EventRecord(rec events.Record) types.EventRecord {
	return types.EventRecord{
		Kind:      rec.Event.Kind.String(),
		Column:    rec.Event.Column,
		Width:     rec.Event.Width,
		NewOrder:  rec.Event.NewOrder,
		Verdict:   rec.Verdict.String(),
		Timestamp: rec.At,
	}
}
