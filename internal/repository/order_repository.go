package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/miniorder-service/internal/domain"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

const pgUniqueViolation = "23505"

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

// Create inserts one order row with a server-assigned creation time. There is
// no foreign key on user_id: orders and users are independently managed.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if r.pool == nil {
		return util.NewStorageError("store unavailable", nil)
	}

	const query = `
        INSERT INTO orders (order_id, user_id, username, dishes, total_price, notes, status, reject_reason)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at`

	err := r.pool.QueryRow(ctx, query,
		order.OrderID,
		order.UserID,
		order.Username,
		order.Dishes,
		order.TotalPrice,
		order.Notes,
		order.Status,
		order.RejectReason,
	).Scan(&order.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return util.NewConflict("order already exists", map[string]any{"order_id": order.OrderID})
		}
		return util.NewStorageError("create order", err)
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if r.pool == nil {
		return nil, util.NewStorageError("store unavailable", nil)
	}

	const query = `
        SELECT order_id, user_id, username, dishes, total_price, notes, status, reject_reason, created_at
        FROM orders WHERE user_id=$1
        ORDER BY created_at DESC, order_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, util.NewStorageError("list orders", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	result := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.OrderID,
			&order.UserID,
			&order.Username,
			&order.Dishes,
			&order.TotalPrice,
			&order.Notes,
			&order.Status,
			&order.RejectReason,
			&order.CreatedAt,
		); err != nil {
			return nil, util.NewStorageError("scan order", err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, util.NewStorageError("list orders", err)
	}
	return result, nil
}
