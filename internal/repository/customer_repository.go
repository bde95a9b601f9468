package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
	"github.com/Hemannshu/xeno-crm/internal/model"
)

// CustomerRepositoryInterface defines methods used by services and the
// event projector.
type CustomerRepositoryInterface interface {
	Create(c *model.Customer) error
	GetByID(id int) (*model.Customer, error)
	ListAll() ([]model.Customer, error)
	ListByActive(active bool) ([]model.Customer, error)
	ListBySegment(segment string) ([]model.Customer, error)
	ListInactiveSince(threshold time.Time) ([]model.Customer, error)
	ListHighValue(minSpend float64) ([]model.Customer, error)
	ListFrequent(minOrders int) ([]model.Customer, error)
	Update(c *model.Customer) error
	UpdateSegment(id int, segment string) error
	UpdateTags(id int, tags string) error
	Delete(id int) error
	Count() (int, error)
	CountBySegment(segment string) (int, error)
	AverageSpendBySegment(segment string) (float64, error)
}

// CustomerRepository is the concrete implementation
type CustomerRepository struct {
	DB *sql.DB
}

const customerColumns = `id, first_name, last_name, email, phone,
        COALESCE(address,''), COALESCE(city,''), COALESCE(state,''),
        COALESCE(country,''), COALESCE(postal_code,''), active,
        COALESCE(segment,''), COALESCE(tags,''), total_spent, order_count,
        last_order_date, created_at, updated_at`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.State, &c.Country, &c.PostalCode,
		&c.Active, &c.Segment, &c.Tags, &c.TotalSpent, &c.OrderCount,
		&c.LastOrderDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create always inserts a new row. Duplicate events therefore produce
// duplicate customers; there is no lookup by id or email here.
func (r *CustomerRepository) Create(c *model.Customer) error {
	c.CreatedAt = time.Now()
	query := `
        INSERT INTO customers
        (first_name, last_name, email, phone, address, city, state, country,
         postal_code, active, segment, tags, total_spent, order_count,
         last_order_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City,
		c.State, c.Country, c.PostalCode, c.Active, c.Segment, c.Tags,
		c.TotalSpent, c.OrderCount, c.LastOrderDate, c.CreatedAt,
	).Scan(&c.ID)
}

// GetByID fetches a customer by ID
func (r *CustomerRepository) GetByID(id int) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCustomerNotFound(id)
		}
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) list(query string, args ...interface{}) ([]model.Customer, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

// ListAll fetches all customers
func (r *CustomerRepository) ListAll() ([]model.Customer, error) {
	return r.list(`SELECT ` + customerColumns + ` FROM customers ORDER BY id`)
}

// ListByActive fetches customers by their active flag. The campaign
// audience resolver uses this with active=true.
func (r *CustomerRepository) ListByActive(active bool) ([]model.Customer, error) {
	return r.list(`SELECT `+customerColumns+` FROM customers WHERE active=$1 ORDER BY id`, active)
}

func (r *CustomerRepository) ListBySegment(segment string) ([]model.Customer, error) {
	return r.list(`SELECT `+customerColumns+` FROM customers WHERE segment=$1 ORDER BY id`, segment)
}

// ListInactiveSince fetches customers whose last order predates the threshold.
func (r *CustomerRepository) ListInactiveSince(threshold time.Time) ([]model.Customer, error) {
	return r.list(`SELECT `+customerColumns+` FROM customers WHERE last_order_date < $1 ORDER BY id`, threshold)
}

func (r *CustomerRepository) ListHighValue(minSpend float64) ([]model.Customer, error) {
	return r.list(`SELECT `+customerColumns+` FROM customers WHERE total_spent >= $1 ORDER BY id`, minSpend)
}

func (r *CustomerRepository) ListFrequent(minOrders int) ([]model.Customer, error) {
	return r.list(`SELECT `+customerColumns+` FROM customers WHERE order_count >= $1 ORDER BY id`, minOrders)
}

// Update overwrites all mutable fields of the customer row.
func (r *CustomerRepository) Update(c *model.Customer) error {
	query := `
        UPDATE customers
        SET first_name=$1, last_name=$2, email=$3, phone=$4, address=$5,
            city=$6, state=$7, country=$8, postal_code=$9, active=$10,
            segment=$11, tags=$12, updated_at=NOW()
        WHERE id=$13
    `
	res, err := r.DB.Exec(query,
		c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City,
		c.State, c.Country, c.PostalCode, c.Active, c.Segment, c.Tags, c.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCustomerNotFound(c.ID)
	}
	return nil
}

func (r *CustomerRepository) UpdateSegment(id int, segment string) error {
	res, err := r.DB.Exec(`UPDATE customers SET segment=$1, updated_at=NOW() WHERE id=$2`, segment, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCustomerNotFound(id)
	}
	return nil
}

func (r *CustomerRepository) UpdateTags(id int, tags string) error {
	res, err := r.DB.Exec(`UPDATE customers SET tags=$1, updated_at=NOW() WHERE id=$2`, tags, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCustomerNotFound(id)
	}
	return nil
}

func (r *CustomerRepository) Delete(id int) error {
	res, err := r.DB.Exec(`DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewCustomerNotFound(id)
	}
	return nil
}

func (r *CustomerRepository) Count() (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count)
	return count, err
}

func (r *CustomerRepository) CountBySegment(segment string) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM customers WHERE segment=$1`, segment).Scan(&count)
	return count, err
}

func (r *CustomerRepository) AverageSpendBySegment(segment string) (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRow(`SELECT AVG(total_spent) FROM customers WHERE segment=$1`, segment).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
