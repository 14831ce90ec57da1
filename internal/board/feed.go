package board

import "github.com/MatheusTerradasDEV/ChapaQuente/app/models"

// EventKind tags a change-feed event.
type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Event is one row-level change on the orders table.
//
//   - Insert carries only the order ID; the reducer re-fetches the full
//     order with its items before adding it.
//   - Update carries the changed scalar fields in Order; nested items on
//     the board entity are left untouched.
//   - Delete carries only the order ID.
type Event struct {
	Kind    EventKind
	OrderID string
	Order   *models.Order
}

// Feed is a buffered channel of change events. The board's reducer goroutine
// is its only consumer; services publish into it after successful writes.
type Feed chan Event

// NewFeed returns a Feed with room for bursts.
func NewFeed() Feed {
	return make(Feed, 256)
}

// Insert publishes an insert event for the given order ID.
func (f Feed) Insert(orderID string) {
	f <- Event{Kind: EventInsert, OrderID: orderID}
}

// Update publishes an update event carrying changed scalar fields.
func (f Feed) Update(order *models.Order) {
	f <- Event{Kind: EventUpdate, OrderID: order.ID, Order: order}
}

// Delete publishes a delete event for the given order ID.
func (f Feed) Delete(orderID string) {
	f <- Event{Kind: EventDelete, OrderID: orderID}
}
