package types

import "time"

// EventRecord is a header notification as reported to remote clients
type EventRecord struct {
	Kind      string    `json:"kind"`
	Column    int       `json:"column"`
	Width     int       `json:"width,omitempty"`
	NewOrder  int       `json:"new_order,omitempty"`
	Verdict   string    `json:"verdict"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderParams carries a complete display order
type OrderParams struct {
	Order []int `json:"order"`
}

// MoveParams moves one logical column to a display position
type MoveParams struct {
	Column   int `json:"column"`
	Position int `json:"position"`
}

// ScrollParams scrolls the header. Offset, when set, is absolute and wins
// over Delta.
type ScrollParams struct {
	Delta  int  `json:"delta,omitempty"`
	Offset *int `json:"offset,omitempty"`
}

// HistoryParams limits the number of history records returned
type HistoryParams struct {
	Limit int `json:"limit,omitempty"`
}

// OrderResult is the reply of every order changing request
type OrderResult struct {
	Order []int `json:"order"`
}
