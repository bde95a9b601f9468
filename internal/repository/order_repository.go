package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
)

type OrderRepositoryInterface interface {
	CreateWithItems(o *model.Order) error
	GetByID(id int) (*model.Order, error)
	ListByCustomer(customerID int) ([]model.Order, error)
}

type OrderRepository struct {
	DB *sql.DB
}

const orderColumns = `id, customer_id, order_number, order_date,
        total_amount, COALESCE(status,''), COALESCE(payment_method,''),
        COALESCE(shipping_address,''), COALESCE(shipping_method,''),
        shipped_date, delivered_date, COALESCE(notes,''), created_at,
        updated_at`

func scanOrder(row interface{ Scan(...interface{}) error }) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.OrderNumber, &o.OrderDate,
		&o.TotalAmount, &o.Status, &o.PaymentMethod,
		&o.ShippingAddress, &o.ShippingMethod,
		&o.ShippedDate, &o.DeliveredDate, &o.Notes, &o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateWithItems inserts the order and all its items in one
// transaction. A failure on any item rolls back the whole order.
func (r *OrderRepository) CreateWithItems(o *model.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	o.CreatedAt = time.Now()
	err = tx.QueryRow(`
        INSERT INTO orders
        (customer_id, order_number, order_date, total_amount, status,
         payment_method, shipping_address, shipping_method, shipped_date,
         delivered_date, notes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `, o.CustomerID, o.OrderNumber, o.OrderDate, o.TotalAmount, o.Status,
		o.PaymentMethod, o.ShippingAddress, o.ShippingMethod, o.ShippedDate,
		o.DeliveredDate, o.Notes, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRow(`
            INSERT INTO order_items
            (order_id, product_id, product_name, unit_price, quantity,
             total_price, product_category, product_variant, notes)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING id
        `, item.OrderID, item.ProductID, item.ProductName, item.UnitPrice,
			item.Quantity, item.TotalPrice, item.ProductCategory,
			item.ProductVariant, item.Notes,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// GetByID fetches an order with its items.
func (r *OrderRepository) GetByID(id int) (*model.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewOrderNotFound(id)
		}
		return nil, err
	}

	items, err := r.itemsForOrder(id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) itemsForOrder(orderID int) ([]model.OrderItem, error) {
	rows, err := r.DB.Query(`
        SELECT id, order_id, product_id, product_name, unit_price, quantity,
               total_price, COALESCE(product_category,''),
               COALESCE(product_variant,''), COALESCE(notes,'')
        FROM order_items WHERE order_id=$1 ORDER BY id
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.UnitPrice, &it.Quantity, &it.TotalPrice,
			&it.ProductCategory, &it.ProductVariant, &it.Notes,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *OrderRepository) ListByCustomer(customerID int) ([]model.Order, error) {
	rows, err := r.DB.Query(`SELECT `+orderColumns+` FROM orders WHERE customer_id=$1 ORDER BY order_date DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.itemsForOrder(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)
