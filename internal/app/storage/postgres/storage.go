package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/orderline/go-order-system/internal/app/entity"
	err_storage "github.com/orderline/go-order-system/internal/app/storage/api/errors"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Postgres struct {
	db *sql.DB
}

func NewPostgresStorage(dbStorageConnect string) (*Postgres, error) {
	db, err := sql.Open("pgx", dbStorageConnect)
	if err != nil {
		return nil, fmt.Errorf("error while postgresql connect: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("error while setting goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("error while applying migrations: %w", err)
	}

	return &Postgres{
		db: db,
	}, nil
}

func (s *Postgres) Close() error {
	return s.db.Close()
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Postgres) CreateOrder(ctx context.Context, order entity.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error while beginning create order transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, status, customer_email, total_amount, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		order.ID.String(), string(order.Status), order.CustomerEmail,
		order.TotalAmount, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error while inserting order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (id, order_id, product_name, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			string(item.ID), order.ID.String(), item.ProductName, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("error while inserting order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error while committing create order transaction: %w", err)
	}

	return nil
}

func (s *Postgres) GetOrder(ctx context.Context, id entity.OrderID) (entity.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, status, customer_email, total_amount, created_at, updated_at
		 FROM orders WHERE id = $1`, id.String())

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Order{}, err_storage.ErrOrderNotFound
		}

		return entity.Order{}, fmt.Errorf("error while getting order: %w", err)
	}

	order.Items, err = s.orderItems(ctx, order.ID)
	if err != nil {
		return entity.Order{}, err
	}

	return order, nil
}

func (s *Postgres) ListOrders(ctx context.Context, status *entity.OrderStatus, limit, offset int) (entity.Orders, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if status != nil {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, status, customer_email, total_amount, created_at, updated_at
			 FROM orders WHERE status = $1
			 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			string(*status), limit, offset)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, status, customer_email, total_amount, created_at, updated_at
			 FROM orders
			 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("error while listing orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items, err = s.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (s *Postgres) CountOrders(ctx context.Context, status *entity.OrderStatus) (int64, error) {
	var (
		row *sql.Row
	)

	if status != nil {
		row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, string(*status))
	} else {
		row = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`)
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("error while counting orders: %w", err)
	}

	return count, nil
}

func (s *Postgres) OrdersByStatus(ctx context.Context, status entity.OrderStatus) (entity.Orders, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, customer_email, total_amount, created_at, updated_at
		 FROM orders WHERE status = $1
		 ORDER BY created_at`, string(status))
	if err != nil {
		return nil, fmt.Errorf("error while getting orders by status: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (s *Postgres) UpdateOrderStatus(ctx context.Context, id entity.OrderID, from, to entity.OrderStatus, updatedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		string(to), updatedAt, id.String(), string(from))
	if err != nil {
		return fmt.Errorf("error while updating order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error while reading affected rows: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id.String()).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error while checking order existence: %w", err)
	}
	if !exists {
		return err_storage.ErrOrderNotFound
	}

	return err_storage.ErrOrderStatusConflict
}

func (s *Postgres) orderItems(ctx context.Context, orderID entity.OrderID) (entity.Items, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_name, quantity, unit_price
		 FROM order_items WHERE order_id = $1
		 ORDER BY id`, orderID.String())
	if err != nil {
		return nil, fmt.Errorf("error while getting order items: %w", err)
	}
	defer rows.Close()

	items := make(entity.Items, 0)
	for rows.Next() {
		var item entity.Item
		err = rows.Scan(&item.ID, &item.ProductName, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("error while scanning order item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (entity.Order, error) {
	var order entity.Order
	err := row.Scan(&order.ID, &order.Status, &order.CustomerEmail,
		&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt)

	return order, err
}

func scanOrders(rows *sql.Rows) (entity.Orders, error) {
	orders := make(entity.Orders, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("error while scanning order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
