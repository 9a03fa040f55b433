package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/erazemk/dostava/internal/db"
	"github.com/erazemk/dostava/internal/events"
	"github.com/erazemk/dostava/internal/model"
	"github.com/erazemk/dostava/internal/store"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) Close() error { return nil }

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

type fixture struct {
	db        *db.DB
	pub       *recorder
	clock     *clock
	items     *Items
	shipments *Shipments
	orders    *Orders
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:    db.NewTestDB(t),
		pub:   &recorder{},
		clock: &clock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
	cfg := Config{Publisher: f.pub, Logger: zap.NewNop(), MaxLimit: 50, Now: f.clock.Now}
	f.items = NewItems(cfg)
	f.shipments = NewShipments(cfg)
	f.orders = NewOrders(cfg)
	return f
}

// run executes fn inside its own unit of work, like one request.
func run[T any](t *testing.T, f *fixture, fn func(ctx context.Context, u *store.UnitOfWork) (T, error)) (T, error) {
	t.Helper()
	ctx := context.Background()
	u, err := store.Begin(ctx, f.db)
	require.NoError(t, err)
	defer u.Release()
	return fn(ctx, u)
}

func shipmentPayload(tracking string) model.ShipmentCreate {
	return model.ShipmentCreate{
		TrackingNumber:     model.Some(tracking),
		Carrier:            model.Some("DHL"),
		OriginAddress:      model.Some("A"),
		DestinationAddress: model.Some("B"),
		WeightKg:           model.Some(2.5),
	}
}

func TestShipmentScenario(t *testing.T) {
	f := newFixture(t)

	created, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Create(ctx, u, shipmentPayload("TRK001"))
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, model.ShipmentPending, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	f.clock.now = f.clock.now.Add(time.Minute)
	updated, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Update(ctx, u, created.ID, model.ShipmentUpdate{Status: model.Some("in_transit")})
	})
	require.NoError(t, err)
	assert.Equal(t, model.ShipmentInTransit, updated.Status)
	assert.Equal(t, "DHL", updated.Carrier)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	found, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.GetByTrackingNumber(ctx, u, "TRK001")
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, model.ShipmentInTransit, found.Status)

	deleted, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*Deleted, error) {
		return f.shipments.Delete(ctx, u, created.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, &Deleted{OK: true, Message: "Shipment deleted successfully"}, deleted)

	_, err = run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Get(ctx, u, created.ID)
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Shipment not found")

	require.Len(t, f.pub.events, 3)
	assert.Equal(t, []string{events.Created, events.Updated, events.Deleted},
		[]string{f.pub.events[0].Action, f.pub.events[1].Action, f.pub.events[2].Action})
	assert.Equal(t, "shipment", f.pub.events[0].Resource)
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	f := newFixture(t)

	in := shipmentPayload("TRK1")
	in.Status = model.Some("lost")
	_, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Create(ctx, u, in)
	})

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Field)

	list, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) ([]model.Shipment, error) {
		return f.shipments.List(ctx, u, ShipmentFilter{}, 0, 10)
	})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.pub.events)
}

func TestFailedUpdateLeavesRecordUntouched(t *testing.T) {
	f := newFixture(t)

	created, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Create(ctx, u, shipmentPayload("TRK2"))
	})
	require.NoError(t, err)

	_, err = run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Update(ctx, u, created.ID, model.ShipmentUpdate{
			Carrier: model.Some("UPS"),
			Status:  model.Some("bogus"),
		})
	})
	require.Error(t, err)

	_, err = run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Update(ctx, u, created.ID, model.ShipmentUpdate{Carrier: model.Null[string]()})
	})
	require.Error(t, err)

	got, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Get(ctx, u, created.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, "DHL", got.Carrier)
	assert.Equal(t, model.ShipmentPending, got.Status)
}

func TestEstimatedDeliveryStoredInUTC(t *testing.T) {
	f := newFixture(t)

	eta := time.Date(2024, 6, 1, 12, 0, 0, 123456789, time.FixedZone("CEST", 2*60*60))
	in := shipmentPayload("TRK3")
	in.EstimatedDelivery = model.Some(eta)

	created, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Create(ctx, u, in)
	})
	require.NoError(t, err)
	require.NotNil(t, created.EstimatedDelivery)
	assert.Equal(t, time.UTC, created.EstimatedDelivery.Location())
	assert.Equal(t, eta.UTC().Truncate(time.Microsecond), *created.EstimatedDelivery)

	got, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Shipment, error) {
		return f.shipments.Get(ctx, u, created.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, *created.EstimatedDelivery, *got.EstimatedDelivery)
}

func TestUpdatedAtNeverGoesBackwards(t *testing.T) {
	f := newFixture(t)

	created, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Order, error) {
		return f.orders.Create(ctx, u, model.OrderCreate{TotalPrice: model.Some(10.0)})
	})
	require.NoError(t, err)

	f.clock.now = f.clock.now.Add(-time.Hour)
	updated, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Order, error) {
		return f.orders.Update(ctx, u, created.ID, model.OrderUpdate{OrderStatus: model.Some("confirmed")})
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderConfirmed, updated.OrderStatus)
	assert.True(t, updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestListPaging(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 5; i++ {
		_, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Item, error) {
			return f.items.Create(ctx, u, model.ItemCreate{Name: model.Some("item"), Price: model.Some(float64(i))})
		})
		require.NoError(t, err)
	}

	page, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) ([]model.Item, error) {
		return f.items.List(ctx, u, 1, 2)
	})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), page[0].ID)
	assert.Equal(t, int64(3), page[1].ID)

	_, err = run(t, f, func(ctx context.Context, u *store.UnitOfWork) ([]model.Item, error) {
		return f.items.List(ctx, u, -1, 10)
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "skip", verr.Field)

	offset, limit, err := f.items.page(0, 10_000)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 50, limit)
}

func TestListOrdersByStatus(t *testing.T) {
	f := newFixture(t)

	for _, status := range []string{"pending", "shipped", "shipped"} {
		_, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Order, error) {
			return f.orders.Create(ctx, u, model.OrderCreate{OrderStatus: model.Some(status), TotalPrice: model.Some(1.0)})
		})
		require.NoError(t, err)
	}

	shipped, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) ([]model.Order, error) {
		return f.orders.List(ctx, u, OrderFilter{OrderStatus: "shipped"}, 0, 100)
	})
	require.NoError(t, err)
	assert.Len(t, shipped, 2)

	all, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) ([]model.Order, error) {
		return f.orders.List(ctx, u, OrderFilter{}, 0, 100)
	})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestItemUpdateKeepsDescriptionWhenUnset(t *testing.T) {
	f := newFixture(t)

	created, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Item, error) {
		return f.items.Create(ctx, u, model.ItemCreate{
			Name:        model.Some("Lamp"),
			Description: model.Some("desk lamp"),
			Price:       model.Some(30.0),
		})
	})
	require.NoError(t, err)

	updated, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Item, error) {
		return f.items.Update(ctx, u, created.ID, model.ItemCreate{Name: model.Some("Lamp"), Price: model.Some(35.0)})
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "desk lamp", *updated.Description)
	assert.Equal(t, 35.0, updated.Price)

	_, err = run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*model.Item, error) {
		return f.items.Update(ctx, u, 999, model.ItemCreate{Name: model.Some("x"), Price: model.Some(1.0)})
	})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Item", nf.Resource)

	deleted, err := run(t, f, func(ctx context.Context, u *store.UnitOfWork) (*Deleted, error) {
		return f.items.Delete(ctx, u, created.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, &Deleted{OK: true}, deleted)
}

func TestPublishFailureIsLoggedNotReturned(t *testing.T) {
	obs, logs := observer.New(zap.WarnLevel)
	pub := &recorder{err: errors.New("broker down")}
	orders := NewOrders(Config{Publisher: pub, Logger: zap.New(obs)})
	database := db.NewTestDB(t)

	ctx := context.Background()
	u, err := store.Begin(ctx, database)
	require.NoError(t, err)
	defer u.Release()

	o, err := orders.Create(ctx, u, model.OrderCreate{TotalPrice: model.Some(5.0)})
	require.NoError(t, err)
	assert.NotZero(t, o.ID)
	assert.Equal(t, 1, logs.FilterMessage("publishing change event failed").Len())
}
