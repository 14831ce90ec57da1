package board

import (
	"errors"
	"testing"
	"time"

	"github.com/MatheusTerradasDEV/ChapaQuente/app/models"
)

// fakeFetcher serves orders from a fixed set, newest first.
type fakeFetcher struct {
	orders map[string]models.Order
}

func (f *fakeFetcher) FetchAll() ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeFetcher) FetchByID(id string) (models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return models.Order{}, errors.New("not found")
	}
	return o, nil
}

func orderFixture(id, name, status string, createdAt time.Time) models.Order {
	return models.Order{
		ID:           id,
		CustomerName: name,
		Phone:        "11999990000",
		DeliveryType: models.DeliveryTypePickup,
		Status:       status,
		Total:        25,
		CreatedAt:    createdAt,
		Items: []models.OrderItem{
			{ID: id + "-item", OrderID: id, ProductID: "prod-1", Quantity: 2, UnitPrice: 10,
				Product: &models.Product{ID: "prod-1", Name: "X-Burguer", Price: 10}},
			{ID: id + "-item2", OrderID: id, ProductID: "prod-2", Quantity: 1, UnitPrice: 5,
				Product: &models.Product{ID: "prod-2", Name: "Refrigerante Lata", Price: 5}},
		},
	}
}

func newTestBoard(t *testing.T, seed ...models.Order) (*Board, *fakeFetcher) {
	t.Helper()
	fetch := &fakeFetcher{orders: map[string]models.Order{}}
	for _, o := range seed {
		fetch.orders[o.ID] = o
	}
	b := New(fetch, NewFeed())
	if err := b.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return b, fetch
}

func TestInsertEventPrependsWithItems(t *testing.T) {
	older := orderFixture("aaa-1", "João", models.StatusPending, time.Now().Add(-time.Hour))
	b, fetch := newTestBoard(t, older)

	newer := orderFixture("bbb-2", "Ana", models.StatusPending, time.Now())
	fetch.orders[newer.ID] = newer
	b.apply(Event{Kind: EventInsert, OrderID: newer.ID})

	orders := b.Snapshot("", "")
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != "bbb-2" {
		t.Errorf("expected new order at the front, got %s", orders[0].ID)
	}
	if len(orders[0].Items) != 2 {
		t.Errorf("expected nested items to be populated, got %d", len(orders[0].Items))
	}
	if orders[0].Items[0].Product == nil {
		t.Error("expected product snapshot on the first item")
	}
}

func TestInsertEventForKnownIDIsNoOp(t *testing.T) {
	existing := orderFixture("aaa-1", "João", models.StatusPending, time.Now())
	b, _ := newTestBoard(t, existing)

	b.apply(Event{Kind: EventInsert, OrderID: existing.ID})

	if got := b.Len(); got != 1 {
		t.Errorf("expected 1 order after duplicate insert, got %d", got)
	}
}

func TestUpdateEventMergesScalarsAndPreservesItems(t *testing.T) {
	existing := orderFixture("aaa-1", "João", models.StatusPending, time.Now())
	b, _ := newTestBoard(t, existing)

	updatedAt := time.Now().Add(time.Minute)
	b.apply(Event{Kind: EventUpdate, OrderID: existing.ID, Order: &models.Order{
		ID:        existing.ID,
		Status:    models.StatusPreparing,
		UpdatedAt: updatedAt,
	}})

	got, ok := b.Get(existing.ID)
	if !ok {
		t.Fatal("order disappeared after update")
	}
	if got.Status != models.StatusPreparing {
		t.Errorf("expected status preparing, got %s", got.Status)
	}
	if !got.UpdatedAt.Equal(updatedAt) {
		t.Errorf("expected updated_at to refresh, got %v", got.UpdatedAt)
	}
	if got.CustomerName != "João" {
		t.Errorf("expected untouched scalars preserved, got name %q", got.CustomerName)
	}
	if len(got.Items) != 2 {
		t.Errorf("expected items preserved, got %d", len(got.Items))
	}
}

func TestUpdateEventForUnknownIDIsNoOp(t *testing.T) {
	existing := orderFixture("aaa-1", "João", models.StatusPending, time.Now())
	b, _ := newTestBoard(t, existing)

	b.apply(Event{Kind: EventUpdate, OrderID: "zzz-9", Order: &models.Order{
		ID:     "zzz-9",
		Status: models.StatusCompleted,
	}})

	if got := b.Len(); got != 1 {
		t.Errorf("expected list length unchanged, got %d", got)
	}
	order, _ := b.Get(existing.ID)
	if order.Status != models.StatusPending {
		t.Errorf("expected existing order untouched, got status %s", order.Status)
	}
}

func TestDeleteEventRemovesExactlyOne(t *testing.T) {
	first := orderFixture("aaa-1", "João", models.StatusPending, time.Now().Add(-time.Hour))
	second := orderFixture("bbb-2", "Ana", models.StatusAccepted, time.Now())
	b, _ := newTestBoard(t, first, second)

	b.apply(Event{Kind: EventDelete, OrderID: first.ID})

	if got := b.Len(); got != 1 {
		t.Fatalf("expected 1 order remaining, got %d", got)
	}
	if _, ok := b.Get(second.ID); !ok {
		t.Error("unrelated order was removed")
	}
	if _, ok := b.Get(first.ID); ok {
		t.Error("deleted order still present")
	}
}

func TestDeleteEventForUnknownIDIsNoOp(t *testing.T) {
	existing := orderFixture("aaa-1", "João", models.StatusPending, time.Now())
	b, _ := newTestBoard(t, existing)

	b.apply(Event{Kind: EventDelete, OrderID: "zzz-9"})

	if got := b.Len(); got != 1 {
		t.Errorf("expected list unchanged, got %d orders", got)
	}
}

func TestSnapshotFiltersAndSorts(t *testing.T) {
	now := time.Now()
	a := orderFixture("aaa-1", "João Pereira", models.StatusPending, now.Add(-2*time.Hour))
	bOrder := orderFixture("bbb-2", "Ana Costa", models.StatusAccepted, now.Add(-time.Hour))
	c := orderFixture("ccc-3", "joana lima", models.StatusPending, now)
	b, _ := newTestBoard(t, a, bOrder, c)

	// Case-insensitive substring on customer name.
	got := b.Snapshot("JOAN", "")
	if len(got) != 1 || got[0].ID != "ccc-3" {
		t.Errorf("name search failed: %+v", ids(got))
	}

	// Substring on the identifier.
	got = b.Snapshot("bbb", "")
	if len(got) != 1 || got[0].ID != "bbb-2" {
		t.Errorf("id search failed: %+v", ids(got))
	}

	// Exact status filter.
	got = b.Snapshot("", models.StatusPending)
	if len(got) != 2 {
		t.Fatalf("status filter failed: %+v", ids(got))
	}
	// Newest first.
	if got[0].ID != "ccc-3" || got[1].ID != "aaa-1" {
		t.Errorf("expected descending creation order, got %+v", ids(got))
	}

	// Conjunction of both filters.
	got = b.Snapshot("jo", models.StatusPending)
	if len(got) != 2 {
		t.Errorf("conjunction failed: %+v", ids(got))
	}
	got = b.Snapshot("ana costa", models.StatusPending)
	if len(got) != 0 {
		t.Errorf("conjunction should exclude mismatched status: %+v", ids(got))
	}
}

func TestStatusCountsIncludesZeroes(t *testing.T) {
	existing := orderFixture("aaa-1", "João", models.StatusPending, time.Now())
	b, _ := newTestBoard(t, existing)

	counts := b.StatusCounts()
	if counts[models.StatusPending] != 1 {
		t.Errorf("expected 1 pending, got %d", counts[models.StatusPending])
	}
	for _, s := range models.OrderStatuses {
		if _, ok := counts[s]; !ok {
			t.Errorf("expected %s to be present in counts", s)
		}
	}
}

func TestSubscribeReceivesPublishedEvents(t *testing.T) {
	existing := orderFixture("aaa-1", "João", models.StatusPending, time.Now())
	b, _ := newTestBoard(t, existing)

	events, cancel := b.Subscribe()
	defer cancel()

	b.apply(Event{Kind: EventUpdate, OrderID: existing.ID, Order: &models.Order{
		ID:     existing.ID,
		Status: models.StatusAccepted,
	}})

	select {
	case payload := <-events:
		if len(payload) == 0 {
			t.Error("expected a JSON payload")
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered to subscriber")
	}
}

func TestNoOpEventsAreNotBroadcast(t *testing.T) {
	existing := orderFixture("aaa-1", "João", models.StatusPending, time.Now())
	b, _ := newTestBoard(t, existing)

	events, cancel := b.Subscribe()
	defer cancel()

	// Unknown IDs leave the board untouched and must stay silent.
	b.apply(Event{Kind: EventUpdate, OrderID: "ghost", Order: &models.Order{
		ID:     "ghost",
		Status: models.StatusAccepted,
	}})
	b.apply(Event{Kind: EventDelete, OrderID: "ghost"})
	// A duplicate insert is a no-op too.
	b.apply(Event{Kind: EventInsert, OrderID: existing.ID})

	select {
	case payload := <-events:
		t.Errorf("no-op event reached subscribers: %s", payload)
	default:
	}
}

func ids(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}
