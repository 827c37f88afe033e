package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/miniorder-service/internal/domain"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

const sampleDishes = `[{"id":"d1","name":"mapo tofu","price":14.00,"quantity":2}]`

type fakeOrderRepo struct {
	mu          sync.Mutex
	rows        map[string]domain.Order
	createCalls int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{rows: make(map[string]domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if _, exists := f.rows[order.OrderID]; exists {
		return util.NewConflict("order already exists", map[string]any{"order_id": order.OrderID})
	}
	f.rows[order.OrderID] = *order
	return nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.Order, 0)
	for _, order := range f.rows {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		OrderID:    "O1",
		UserID:     "U1",
		Username:   "Alice",
		Dishes:     sampleDishes,
		TotalPrice: 28.00,
	}
}

func TestCreateOrderAppliesDefaults(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, zap.NewNop())

	order, err := svc.CreateOrder(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.DefaultOrderNotes, order.Notes)
	assert.Empty(t, order.RejectReason)
	assert.Equal(t, 28.00, order.TotalPrice)
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"missing order_id", func(in *CreateOrderInput) { in.OrderID = "" }},
		{"missing user_id", func(in *CreateOrderInput) { in.UserID = "" }},
		{"missing username", func(in *CreateOrderInput) { in.Username = "" }},
		{"empty dishes", func(in *CreateOrderInput) { in.Dishes = "" }},
		{"dishes empty array", func(in *CreateOrderInput) { in.Dishes = "[]" }},
		{"dishes not json", func(in *CreateOrderInput) { in.Dishes = "rice" }},
		{"missing total_price", func(in *CreateOrderInput) { in.TotalPrice = 0 }},
		{"negative total_price", func(in *CreateOrderInput) { in.TotalPrice = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			svc := NewOrderService(repo, nil, zap.NewNop())

			input := validInput()
			tt.mutate(&input)

			_, err := svc.CreateOrder(context.Background(), input)
			require.Error(t, err)
			assert.True(t, util.IsCode(err, util.CodeInvalidArgument))
			assert.Zero(t, repo.createCalls, "no write may happen on validation failure")
		})
	}
}

func TestCreateOrderNamesAllMissingFields(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), nil, zap.NewNop())

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order_id")
	assert.Contains(t, err.Error(), "user_id")
	assert.Contains(t, err.Error(), "username")
	assert.Contains(t, err.Error(), "dishes")
	assert.Contains(t, err.Error(), "total_price")
}

func TestCreateOrderRejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), nil, zap.NewNop())

	input := validInput()
	input.Status = "shipped"
	_, err := svc.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeInvalidArgument))
}

func TestCreateOrderKeepsSuppliedFields(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, zap.NewNop())

	input := validInput()
	input.Notes = "extra spicy"
	input.Status = string(domain.OrderStatusAccepted)
	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "extra spicy", order.Notes)
	assert.Equal(t, domain.OrderStatusAccepted, order.Status)
}

func TestCreateOrderDuplicateIsConflict(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, zap.NewNop())

	first := validInput()
	_, err := svc.CreateOrder(context.Background(), first)
	require.NoError(t, err)

	second := validInput()
	second.Username = "Mallory"
	_, err = svc.CreateOrder(context.Background(), second)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, util.CodeConflict))

	// original row unchanged
	orders, err := svc.ListOrdersByUser(context.Background(), "U1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Alice", orders[0].Username)
}

func TestListOrdersByUser(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, nil, zap.NewNop())

	_, err := svc.ListOrdersByUser(context.Background(), "")
	assert.True(t, util.IsCode(err, util.CodeInvalidArgument))

	orders, err := svc.ListOrdersByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
}
