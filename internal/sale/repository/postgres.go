package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const saleColumns = `id, merchant_id, sale_type, payment_method, subtotal, total, status, notes,
            delivery_fee, addition_type, addition_value, addition_amount,
            discount_type, discount_value, discount_amount, created_by, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, s *model.Sale) error {
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO sales (`+saleColumns+`)
            VALUES (
                :id, :merchant_id, :sale_type, :payment_method, :subtotal, :total, :status, :notes,
                :delivery_fee, :addition_type, :addition_value, :addition_amount,
                :discount_type, :discount_value, :discount_amount, :created_by, :created_at, :updated_at
            )
        `, s)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}

		if len(s.Items) > 0 {
			_, err = tx.NamedExecContext(ctx, `
                INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, total_price, is_composite, created_at)
                VALUES (:id, :sale_id, :product_id, :product_name, :quantity, :unit_price, :total_price, :is_composite, :created_at)
            `, s.Items)
			if err != nil {
				return fmt.Errorf("insert sale items: %w", err)
			}
		}

		if s.Delivery != nil {
			_, err = tx.NamedExecContext(ctx, `
                INSERT INTO delivery_info (
                    id, sale_id, customer_name, customer_phone, delivery_date, delivery_time,
                    street, number, complement, neighborhood, city, state, zip_code,
                    additional_info, from_info, to_info
                )
                VALUES (
                    :id, :sale_id, :customer_name, :customer_phone, :delivery_date, :delivery_time,
                    :street, :number, :complement, :neighborhood, :city, :state, :zip_code,
                    :additional_info, :from_info, :to_info
                )
            `, s.Delivery)
			if err != nil {
				return fmt.Errorf("insert delivery info: %w", err)
			}
		}
		return nil
	})
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.Sale, error) {
	var s model.Sale
	err := r.DB.GetContext(ctx, &s, `SELECT `+saleColumns+` FROM sales WHERE id = $1 AND merchant_id = $2`, id, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sales := []model.Sale{s}
	if err := r.attach(ctx, sales); err != nil {
		return nil, err
	}
	return &sales[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SaleFilters) ([]model.Sale, int, error) {
	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.SaleType != "" {
		conditions = append(conditions, "sale_type = :sale_type")
		args["sale_type"] = f.SaleType
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var count int
	q, list, err := sqlx.Named("SELECT count(*) FROM sales"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(q), list...); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := "SELECT " + saleColumns + " FROM sales" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (max(f.Page, 1) - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	sales := []model.Sale{}
	if err := nstmt.SelectContext(ctx, &sales, args); err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	return sales, count, nil
}

func (r *PGRepository) FindByStatuses(ctx context.Context, merchantID string, statuses []orderstatus.Status) ([]model.Sale, error) {
	if len(statuses) == 0 {
		return []model.Sale{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+saleColumns+` FROM sales WHERE merchant_id = ? AND status IN (?) ORDER BY created_at ASC`,
		merchantID, statuses)
	if err != nil {
		return nil, err
	}

	sales := []model.Sale{}
	if err := r.DB.SelectContext(ctx, &sales, r.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find sales by status: %w", err)
	}
	if err := r.attach(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, merchantID, id string, status orderstatus.Status) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sales SET status = $1, updated_at = NOW() WHERE id = $2 AND merchant_id = $3`,
		status, id, merchantID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// attach loads items and delivery info for sales in two batched queries.
func (r *PGRepository) attach(ctx context.Context, sales []model.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	index := make(map[string]int, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		index[s.ID] = i
	}

	query, args, err := sqlx.In(`
        SELECT id, sale_id, product_id, product_name, quantity, unit_price, total_price, is_composite, created_at
        FROM sale_items WHERE sale_id IN (?) ORDER BY created_at ASC, id ASC
    `, ids)
	if err != nil {
		return err
	}
	var items []model.SaleItem
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("find sale items: %w", err)
	}
	for _, it := range items {
		i := index[it.SaleID]
		sales[i].Items = append(sales[i].Items, it)
	}

	query, args, err = sqlx.In(`
        SELECT id, sale_id, customer_name, customer_phone, delivery_date, delivery_time,
               street, number, complement, neighborhood, city, state, zip_code,
               additional_info, from_info, to_info
        FROM delivery_info WHERE sale_id IN (?)
    `, ids)
	if err != nil {
		return err
	}
	var deliveries []model.DeliveryInfo
	if err := r.DB.SelectContext(ctx, &deliveries, r.DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("find delivery info: %w", err)
	}
	for i := range deliveries {
		d := deliveries[i]
		sales[index[d.SaleID]].Delivery = &d
	}
	return nil
}
