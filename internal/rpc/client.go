package rpc

import (
	"context"
	"fmt"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"

	"hdrbar/pkg/types"
)

// Client is a remote control for a running header
type Client struct {
	cli *jrpc2.Client
}

// EventHandler receives pushed header notifications
type EventHandler func(rec types.EventRecord)

// NewClient creates a new client on an established channel. onEvent, if
// not nil, receives pushed notifications.
func NewClient(ch channel.Channel, onEvent EventHandler) *Client {
	opts := &jrpc2.ClientOptions{}
	if onEvent != nil {
		opts.OnNotify = func(req *jrpc2.Request) {
			if req.Method() != NotifyEvent {
				return
			}
			var rec types.EventRecord
			if err := req.UnmarshalParams(&rec); err == nil {
				onEvent(rec)
			}
		}
	}
	return &Client{cli: jrpc2.NewClient(ch, opts)}
}

// Connect dials a websocket endpoint and returns a client on it
func Connect(ctx context.Context, url string, onEvent EventHandler) (*Client, error) {
	stream, err := Dial(ctx, url, 3)
	if err != nil {
		return nil, err
	}
	return NewClient(stream, onEvent), nil
}

// Order returns the display order
func (c *Client) Order(ctx context.Context) ([]int, error) {
	var res types.OrderResult
	if err := c.cli.CallResult(ctx, MethodGetOrder, nil, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodGetOrder, err)
	}
	return res.Order, nil
}

// SetOrder replaces the display order
func (c *Client) SetOrder(ctx context.Context, order []int) ([]int, error) {
	var res types.OrderResult
	if err := c.cli.CallResult(ctx, MethodSetOrder, types.OrderParams{Order: order}, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodSetOrder, err)
	}
	return res.Order, nil
}

// MoveColumn moves a logical column to a display position
func (c *Client) MoveColumn(ctx context.Context, column, position int) ([]int, error) {
	var res types.OrderResult
	params := types.MoveParams{Column: column, Position: position}
	if err := c.cli.CallResult(ctx, MethodMoveColumn, params, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodMoveColumn, err)
	}
	return res.Order, nil
}

// Scroll scrolls the header and returns the new offset
func (c *Client) Scroll(ctx context.Context, params types.ScrollParams) (int, error) {
	var offset int
	if err := c.cli.CallResult(ctx, MethodScroll, params, &offset); err != nil {
		return 0, fmt.Errorf("%s: %w", MethodScroll, err)
	}
	return offset, nil
}

// Layout returns the current layout
func (c *Client) Layout(ctx context.Context) (types.Layout, error) {
	var layout types.Layout
	if err := c.cli.CallResult(ctx, MethodLayout, nil, &layout); err != nil {
		return types.Layout{}, fmt.Errorf("%s: %w", MethodLayout, err)
	}
	return layout, nil
}

// History returns up to limit recent notifications, all when limit is 0
func (c *Client) History(ctx context.Context, limit int) ([]types.EventRecord, error) {
	var records []types.EventRecord
	params := types.HistoryParams{Limit: limit}
	if err := c.cli.CallResult(ctx, MethodHistory, params, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", MethodHistory, err)
	}
	return records, nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.cli.Close()
}
