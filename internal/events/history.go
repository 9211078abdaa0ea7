package events

import "sync"

// History is a thread-safe ring buffer of the most recent notifications
type History struct {
	records  []Record
	head     int
	size     int
	capacity int
	mutex    sync.RWMutex
}

// NewHistory creates a new history holding up to capacity records
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{
		records:  make([]Record, capacity),
		capacity: capacity,
	}
}

// Add appends a record, overwriting the oldest one when full
func (h *History) Add(rec Record) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.records[h.head] = rec
	h.head = (h.head + 1) % h.capacity
	if h.size < h.capacity {
		h.size++
	}
}

// Recent returns the most recent n records, oldest first
func (h *History) Recent(n int) []Record {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if n <= 0 || h.size == 0 {
		return []Record{}
	}
	if n > h.size {
		n = h.size
	}

	out := make([]Record, n)
	start := h.head - n
	if start < 0 {
		start += h.capacity
	}
	for i := 0; i < n; i++ {
		out[i] = h.records[(start+i)%h.capacity]
	}
	return out
}

// All returns every stored record, oldest first
func (h *History) All() []Record {
	return h.Recent(h.Len())
}

// Last returns the newest record
func (h *History) Last() (Record, bool) {
	recent := h.Recent(1)
	if len(recent) == 0 {
		return Record{}, false
	}
	return recent[0], true
}

// Len returns the number of stored records
func (h *History) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.size
}

// Clear removes every record
func (h *History) Clear() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.records = make([]Record, h.capacity)
	h.head = 0
	h.size = 0
}
