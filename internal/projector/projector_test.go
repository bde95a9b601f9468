package projector_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
	"github.com/Hemannshu/xeno-crm/internal/projector"
)

type mockCustomerRepo struct {
	created  []*model.Customer
	existing map[int]*model.Customer
	getErr   error
}

func (m *mockCustomerRepo) Create(c *model.Customer) error {
	c.ID = len(m.created) + 1
	m.created = append(m.created, c)
	return nil
}

func (m *mockCustomerRepo) GetByID(id int) (*model.Customer, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if c, ok := m.existing[id]; ok {
		return c, nil
	}
	return nil, appErrors.NewCustomerNotFound(id)
}

func (m *mockCustomerRepo) ListAll() ([]model.Customer, error)                { return nil, nil }
func (m *mockCustomerRepo) ListByActive(active bool) ([]model.Customer, error) { return nil, nil }
func (m *mockCustomerRepo) ListBySegment(segment string) ([]model.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) ListInactiveSince(threshold time.Time) ([]model.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) ListHighValue(minSpend float64) ([]model.Customer, error) {
	return nil, nil
}
func (m *mockCustomerRepo) ListFrequent(minOrders int) ([]model.Customer, error) { return nil, nil }
func (m *mockCustomerRepo) Update(c *model.Customer) error                       { return nil }
func (m *mockCustomerRepo) UpdateSegment(id int, segment string) error           { return nil }
func (m *mockCustomerRepo) UpdateTags(id int, tags string) error                 { return nil }
func (m *mockCustomerRepo) Delete(id int) error                                  { return nil }
func (m *mockCustomerRepo) Count() (int, error)                                  { return 0, nil }
func (m *mockCustomerRepo) CountBySegment(segment string) (int, error)           { return 0, nil }
func (m *mockCustomerRepo) AverageSpendBySegment(segment string) (float64, error) {
	return 0, nil
}

type mockOrderRepo struct {
	created   []*model.Order
	createErr error
}

func (m *mockOrderRepo) CreateWithItems(o *model.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, o)
	return nil
}

func (m *mockOrderRepo) GetByID(id int) (*model.Order, error) {
	return nil, appErrors.NewOrderNotFound(id)
}
func (m *mockOrderRepo) ListByCustomer(customerID int) ([]model.Order, error) { return nil, nil }

func TestHandleCustomerEventCreatesRow(t *testing.T) {
	repo := &mockCustomerRepo{}
	p := &projector.Projector{CustomerRepo: repo, OrderRepo: &mockOrderRepo{}}

	body, _ := json.Marshal(model.CustomerEvent{
		FirstName: "Ana",
		LastName:  "Pereira",
		Email:     "ana@example.com",
		Active:    true,
		Segment:   "NEW",
	})
	require.NoError(t, p.HandleCustomerEvent(body))
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Ana", repo.created[0].FirstName)
	assert.Equal(t, "ana@example.com", repo.created[0].Email)
	assert.True(t, repo.created[0].Active)
}

func TestHandleCustomerEventDuplicateMakesTwoRows(t *testing.T) {
	repo := &mockCustomerRepo{}
	p := &projector.Projector{CustomerRepo: repo, OrderRepo: &mockOrderRepo{}}

	body, _ := json.Marshal(model.CustomerEvent{FirstName: "Ana", Email: "ana@example.com"})
	require.NoError(t, p.HandleCustomerEvent(body))
	require.NoError(t, p.HandleCustomerEvent(body))

	// No dedup by id or email: the same event lands twice.
	assert.Len(t, repo.created, 2)
}

func TestHandleCustomerEventBadPayload(t *testing.T) {
	p := &projector.Projector{CustomerRepo: &mockCustomerRepo{}, OrderRepo: &mockOrderRepo{}}
	assert.Error(t, p.HandleCustomerEvent([]byte("{not json")))
}

func TestHandleOrderEventPersistsOrderWithItems(t *testing.T) {
	customers := &mockCustomerRepo{existing: map[int]*model.Customer{
		42: {ID: 42, FirstName: "Brian"},
	}}
	orders := &mockOrderRepo{}
	p := &projector.Projector{CustomerRepo: customers, OrderRepo: orders}

	orderDate := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	body, _ := json.Marshal(model.OrderEvent{
		CustomerID:  42,
		OrderNumber: "ORD-1001",
		OrderDate:   orderDate,
		TotalAmount: 199.90,
		Status:      "PAID",
		Items: []model.OrderItemEvent{
			{ProductID: "p1", ProductName: "Widget", UnitPrice: 99.95, Quantity: 2, TotalPrice: 199.90},
		},
	})
	require.NoError(t, p.HandleOrderEvent(body))
	require.Len(t, orders.created, 1)

	order := orders.created[0]
	assert.Equal(t, 42, order.CustomerID)
	assert.Equal(t, "ORD-1001", order.OrderNumber)
	assert.True(t, order.OrderDate.Equal(orderDate))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Widget", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestHandleOrderEventUnknownCustomerIsDropped(t *testing.T) {
	orders := &mockOrderRepo{}
	p := &projector.Projector{
		CustomerRepo: &mockCustomerRepo{existing: map[int]*model.Customer{}},
		OrderRepo:    orders,
	}

	body, _ := json.Marshal(model.OrderEvent{CustomerID: 99, OrderNumber: "ORD-2"})

	// Dropped silently: nil error so the message gets acked, and
	// nothing is persisted.
	require.NoError(t, p.HandleOrderEvent(body))
	assert.Empty(t, orders.created)
}

func TestHandleOrderEventLookupFailurePropagates(t *testing.T) {
	p := &projector.Projector{
		CustomerRepo: &mockCustomerRepo{getErr: errors.New("connection reset")},
		OrderRepo:    &mockOrderRepo{},
	}

	body, _ := json.Marshal(model.OrderEvent{CustomerID: 1, OrderNumber: "ORD-3"})
	assert.Error(t, p.HandleOrderEvent(body))
}

func TestHandleOrderEventDefaultsOrderDate(t *testing.T) {
	customers := &mockCustomerRepo{existing: map[int]*model.Customer{1: {ID: 1}}}
	orders := &mockOrderRepo{}
	p := &projector.Projector{CustomerRepo: customers, OrderRepo: orders}

	body, _ := json.Marshal(map[string]interface{}{
		"customer_id":  1,
		"order_number": "ORD-4",
		"total_amount": 10.0,
	})
	require.NoError(t, p.HandleOrderEvent(body))
	require.Len(t, orders.created, 1)
	assert.False(t, orders.created[0].OrderDate.IsZero())
}
