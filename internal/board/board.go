// Package board keeps an in-memory order list consistent with the orders
// table. A bulk load seeds the list; afterwards a single reducer goroutine
// consumes the change feed and is the only writer. Readers take snapshots,
// so an event arriving while a status change is in flight can never corrupt
// the list; whichever lands last wins.
package board

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/collection"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/logger"
	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/metrics"
)

// Fetcher supplies orders from the database. OrderRepository satisfies it.
type Fetcher interface {
	FetchAll() ([]models.Order, error)
	FetchByID(id string) (models.Order, error)
}

// Board is the live order list.
type Board struct {
	mu     sync.RWMutex
	orders []models.Order

	feed  Feed
	fetch Fetcher

	// broadcast pushes a serialised event to connected admin screens.
	// Set by the server wiring; nil means no fan-out.
	broadcast func([]byte)

	subMu sync.Mutex
	subs  map[chan []byte]struct{}
}

// New creates a Board fed by feed and backed by fetch.
func New(fetch Fetcher, feed Feed) *Board {
	return &Board{
		fetch: fetch,
		feed:  feed,
		subs:  make(map[chan []byte]struct{}),
	}
}

// SetBroadcast wires the fan-out used for connected websocket clients.
func (b *Board) SetBroadcast(fn func([]byte)) {
	b.broadcast = fn
}

// Feed returns the channel services publish change events into.
func (b *Board) Feed() Feed {
	return b.feed
}

// Load seeds the board with a bulk fetch, newest first.
// On failure the list is left empty and the error is returned.
func (b *Board) Load() error {
	orders, err := b.fetch.FetchAll()
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()

	b.updateGauges()
	return nil
}

// Run consumes the change feed until ctx is cancelled. It must be started
// exactly once; it is the sole writer of the order list after Load.
func (b *Board) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-b.feed:
			b.apply(ev)
		}
	}
}

func (b *Board) apply(ev Event) {
	metrics.BoardEvents.WithLabelValues(string(ev.Kind)).Inc()

	var changed bool
	switch ev.Kind {
	case EventInsert:
		changed = b.applyInsert(ev.OrderID)
	case EventUpdate:
		changed = b.applyUpdate(ev)
	case EventDelete:
		changed = b.applyDelete(ev.OrderID)
	default:
		logger.Warn("board: unknown event kind", "kind", ev.Kind)
		return
	}

	// No-op events (unknown IDs, duplicate inserts) are not broadcast.
	if !changed {
		return
	}

	b.updateGauges()
	b.publish(ev)
}

// applyInsert re-fetches the full order with its items and prepends it.
// An insert for an ID already on the board is a no-op.
func (b *Board) applyInsert(id string) bool {
	b.mu.RLock()
	exists := collection.Contains(b.orders, func(o models.Order) bool { return o.ID == id })
	b.mu.RUnlock()
	if exists {
		return false
	}

	order, err := b.fetch.FetchByID(id)
	if err != nil {
		logger.Error("board: fetch inserted order", "order_id", id, "error", err)
		return false
	}

	b.mu.Lock()
	b.orders = append([]models.Order{order}, b.orders...)
	b.mu.Unlock()
	return true
}

// applyUpdate merges changed scalar fields into the matching entity,
// preserving its nested items. Zero-valued fields are treated as unchanged.
// Updates for unknown IDs are no-ops.
func (b *Board) applyUpdate(ev Event) bool {
	if ev.Order == nil {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := collection.IndexOf(b.orders, func(o models.Order) bool { return o.ID == ev.OrderID })
	if idx < 0 {
		return false
	}

	cur := &b.orders[idx]
	if ev.Order.CustomerName != "" {
		cur.CustomerName = ev.Order.CustomerName
	}
	if ev.Order.Phone != "" {
		cur.Phone = ev.Order.Phone
	}
	if ev.Order.DeliveryType != "" {
		cur.DeliveryType = ev.Order.DeliveryType
	}
	if ev.Order.Address != "" {
		cur.Address = ev.Order.Address
	}
	if ev.Order.Total != 0 {
		cur.Total = ev.Order.Total
	}
	if ev.Order.Status != "" {
		cur.Status = ev.Order.Status
	}
	if !ev.Order.UpdatedAt.IsZero() {
		cur.UpdatedAt = ev.Order.UpdatedAt
	}
	return true
}

// applyDelete removes exactly the entity with the matching ID.
func (b *Board) applyDelete(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	before := len(b.orders)
	b.orders = collection.Reject(b.orders, func(o models.Order) bool { return o.ID == id })
	return len(b.orders) != before
}

// Snapshot returns a filtered copy of the board, newest first.
// search matches case-insensitively against customer name or ID substrings;
// status filters by exact match when non-empty. Both conditions conjoin.
func (b *Board) Snapshot(search, status string) []models.Order {
	b.mu.RLock()
	out := make([]models.Order, len(b.orders))
	copy(out, b.orders)
	b.mu.RUnlock()

	if search != "" {
		needle := strings.ToLower(search)
		out = collection.Filter(out, func(o models.Order) bool {
			return strings.Contains(strings.ToLower(o.CustomerName), needle) ||
				strings.Contains(strings.ToLower(o.ID), needle)
		})
	}
	if status != "" {
		out = collection.Filter(out, func(o models.Order) bool { return o.Status == status })
	}

	collection.SortBy(out, func(a, z models.Order) bool {
		return a.CreatedAt.After(z.CreatedAt)
	})
	return out
}

// Get returns the order with the given ID, if present.
func (b *Board) Get(id string) (models.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return collection.First(b.orders, func(o models.Order) bool { return o.ID == id })
}

// Len returns the number of orders on the board.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.orders)
}

// StatusCounts tallies orders per status for the board header.
func (b *Board) StatusCounts() map[string]int {
	b.mu.RLock()
	orders := b.orders
	counts := collection.CountBy(orders, func(o models.Order) string { return o.Status })
	b.mu.RUnlock()

	// Every recognised status appears, even at zero.
	for _, s := range models.OrderStatuses {
		if _, ok := counts[s]; !ok {
			counts[s] = 0
		}
	}
	return counts
}

func (b *Board) updateGauges() {
	for status, n := range b.StatusCounts() {
		metrics.BoardOrders.WithLabelValues(status).Set(float64(n))
	}
}

// feedMessage is the wire shape pushed to websocket and event-stream clients.
type feedMessage struct {
	Kind    string        `json:"kind"`
	OrderID string        `json:"order_id"`
	Order   *models.Order `json:"order,omitempty"`
	At      time.Time     `json:"at"`
}

func (b *Board) publish(ev Event) {
	msg := feedMessage{
		Kind:    string(ev.Kind),
		OrderID: ev.OrderID,
		At:      time.Now(),
	}

	// Inserts and updates carry the board's current view of the order so
	// clients need no follow-up fetch.
	if ev.Kind != EventDelete {
		if order, ok := b.Get(ev.OrderID); ok {
			msg.Order = &order
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Error("board: marshal feed message", "error", err)
		return
	}

	if b.broadcast != nil {
		b.broadcast(payload)
	}

	b.subMu.Lock()
	for ch := range b.subs {
		select {
		case ch <- payload:
		default: // slow subscriber, drop
		}
	}
	b.subMu.Unlock()
}

// Subscribe registers an event-stream consumer. The returned cancel func
// must be called when the client disconnects.
func (b *Board) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 32)

	b.subMu.Lock()
	b.subs[ch] = struct{}{}
	b.subMu.Unlock()
	metrics.FeedSubscribers.WithLabelValues("sse").Inc()

	cancel := func() {
		b.subMu.Lock()
		delete(b.subs, ch)
		b.subMu.Unlock()
		metrics.FeedSubscribers.WithLabelValues("sse").Dec()
	}
	return ch, cancel
}
