package rpc

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdrbar/internal/events"
	"hdrbar/internal/header"
	"hdrbar/pkg/types"
)

type fakeHeader struct {
	mutex  sync.Mutex
	layout types.Layout
}

func newFakeHeader() *fakeHeader {
	return &fakeHeader{layout: types.Layout{
		Name:  "test",
		Order: []int{0, 1, 2},
		Columns: []types.ColumnLayout{
			{Title: "A", Width: 10},
			{Title: "B", Width: 10},
			{Title: "C", Width: 10},
		},
		Sort: types.SortState{Column: types.NoSort},
	}}
}

func (h *fakeHeader) Layout() types.Layout {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.layout.Clone()
}

func (h *fakeHeader) SetOrder(ctx context.Context, order []int) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if err := header.ValidateOrder(order, len(h.layout.Columns)); err != nil {
		return err
	}
	h.layout.Order = append([]int(nil), order...)
	return nil
}

func (h *fakeHeader) MoveColumn(ctx context.Context, column, position int) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.layout.Order = header.MovedOrder(h.layout.Order, column, position)
	return nil
}

func (h *fakeHeader) Scroll(ctx context.Context, p types.ScrollParams) (int, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if p.Offset != nil {
		h.layout.ScrollOffset = *p.Offset
	} else {
		h.layout.ScrollOffset += p.Delta
	}
	return h.layout.ScrollOffset, nil
}

func directClient(t *testing.T, h Header, history *events.History) *Client {
	t.Helper()

	cch, sch := channel.Direct()
	srv := jrpc2.NewServer(NewService(h, history).Assigner(), nil).Start(sch)
	cli := NewClient(cch, nil)
	t.Cleanup(func() {
		cli.Close()
		srv.Stop()
	})
	return cli
}

func TestServiceOrder(t *testing.T) {
	ctx := context.Background()
	cli := directClient(t, newFakeHeader(), nil)

	order, err := cli.Order(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)

	order, err = cli.SetOrder(ctx, []int{2, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 0}, order)

	_, err = cli.SetOrder(ctx, []int{0, 0, 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid column order")

	order, err = cli.MoveColumn(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, order)
}

func TestServiceScrollAndLayout(t *testing.T) {
	ctx := context.Background()
	cli := directClient(t, newFakeHeader(), nil)

	offset, err := cli.Scroll(ctx, types.ScrollParams{Delta: -4})
	require.NoError(t, err)
	assert.Equal(t, -4, offset)

	zero := 0
	offset, err = cli.Scroll(ctx, types.ScrollParams{Delta: -4, Offset: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	layout, err := cli.Layout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", layout.Name)
	assert.Len(t, layout.Columns, 3)
}

func TestServiceHistory(t *testing.T) {
	ctx := context.Background()
	history := events.NewHistory(8)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	history.Add(events.Record{Event: header.Event{Kind: header.Click, Column: 1}, Verdict: header.Accept, At: at})
	history.Add(events.Record{Event: header.Event{Kind: header.EndResize, Column: 0, Width: 12}, Verdict: header.Unhandled, At: at})

	cli := directClient(t, newFakeHeader(), history)

	records, err := cli.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "click", records[0].Kind)
	assert.Equal(t, "accept", records[0].Verdict)
	assert.True(t, at.Equal(records[0].Timestamp))

	records, err = cli.History(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, types.EventRecord{Kind: "end_resize", Column: 0, Width: 12, Verdict: "unhandled", Timestamp: records[0].Timestamp}, records[0])

	empty := directClient(t, newFakeHeader(), nil)
	records, err = empty.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestServerOverWebsocket(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := NewServer(NewService(newFakeHeader(), nil), nil)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	received := make(chan types.EventRecord, 1)
	cli, err := Connect(ctx, "ws"+strings.TrimPrefix(ts.URL, "http"), func(rec types.EventRecord) {
		received <- rec
	})
	require.NoError(t, err)
	defer cli.Close()

	order, err := cli.SetOrder(ctx, []int{1, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0}, order)

	require.Eventually(t, func() bool { return srv.Connections() == 1 }, time.Second, 10*time.Millisecond)

	srv.Broadcast(ctx, events.Record{Event: header.Event{Kind: header.EndReorder, Column: 0, NewOrder: 2}, Verdict: header.Accept})

	select {
	case rec := <-received:
		assert.Equal(t, "end_reorder", rec.Kind)
		assert.Equal(t, 2, rec.NewOrder)
	case <-ctx.Done():
		t.Fatal("no notification received")
	}

	cli.Close()
	assert.Eventually(t, func() bool { return srv.Connections() == 0 }, time.Second, 10*time.Millisecond)
}

func TestSubscriberPushesInOrder(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := NewServer(NewService(newFakeHeader(), nil), nil)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	const burst = 50
	received := make(chan types.EventRecord, burst)
	cli, err := Connect(ctx, "ws"+strings.TrimPrefix(ts.URL, "http"), func(rec types.EventRecord) {
		received <- rec
	})
	require.NoError(t, err)
	defer cli.Close()

	require.Eventually(t, func() bool { return srv.Connections() == 1 }, time.Second, 10*time.Millisecond)

	push := srv.Subscriber()
	push(events.Record{Event: header.Event{Kind: header.BeginResize, Column: 0}, Verdict: header.Accept})
	for i := 1; i < burst-1; i++ {
		push(events.Record{Event: header.Event{Kind: header.Resizing, Column: 0, Width: i}, Verdict: header.Accept})
	}
	push(events.Record{Event: header.Event{Kind: header.EndResize, Column: 0, Width: burst}, Verdict: header.Accept})

	var got []types.EventRecord
	for len(got) < burst {
		select {
		case rec := <-received:
			got = append(got, rec)
		case <-ctx.Done():
			t.Fatalf("received %d of %d notifications", len(got), burst)
		}
	}

	assert.Equal(t, "begin_resize", got[0].Kind)
	assert.Equal(t, "end_resize", got[burst-1].Kind)
	for i := 1; i < burst-1; i++ {
		assert.Equal(t, "resizing", got[i].Kind)
		assert.Equal(t, i, got[i].Width)
	}
}

func TestDialFailsAfterRetries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ts := httptest.NewServer(nil)
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	ts.Close()

	_, err := Dial(ctx, url, 2)
	assert.Error(t, err)

	_, err = Dial(ctx, "://bad", 1)
	assert.Error(t, err)
}

func TestExponentialBackoff(t *testing.T) {
	b := NewExponentialBackoff()
	assert.Equal(t, 100*time.Millisecond, b.Delay())
	assert.Equal(t, time.Second, b.Timeout())

	b.Increment()
	b.Increment()
	assert.Equal(t, 400*time.Millisecond, b.Delay())
	assert.Equal(t, 4*time.Second, b.Timeout())

	for i := 0; i < 10; i++ {
		b.Increment()
	}
	assert.Equal(t, 5*time.Second, b.Delay())

	b.Reset()
	assert.Equal(t, 100*time.Millisecond, b.Delay())
}
