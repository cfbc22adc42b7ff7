package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const levelColumns = `id, merchant_id, name, manage_stock, stock_quantity`

func (r *PGRepository) GetLevel(ctx context.Context, merchantID, productID string) (*model.StockLevel, error) {
	var level model.StockLevel
	query := `SELECT ` + levelColumns + ` FROM products WHERE merchant_id = $1 AND id = $2`

	err := r.DB.GetContext(ctx, &level, query, merchantID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &level, nil
}

func (r *PGRepository) GetLevels(ctx context.Context, merchantID string, productIDs []string) ([]model.StockLevel, error) {
	if len(productIDs) == 0 {
		return []model.StockLevel{}, nil
	}

	query, args, err := sqlx.In(`
        SELECT `+levelColumns+` FROM products
        WHERE merchant_id = ? AND id IN (?)
    `, merchantID, productIDs)
	if err != nil {
		return nil, err
	}

	var levels []model.StockLevel
	err = r.DB.SelectContext(ctx, &levels, r.DB.Rebind(query), args...)
	return levels, err
}

func (r *PGRepository) ApplyMovement(ctx context.Context, m *model.StockMovement) error {
	insertQuery := `
        INSERT INTO stock_movements (
            id, merchant_id, product_id, movement_type,
            quantity_change, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :merchant_id, :product_id, :movement_type,
            :quantity_change, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE products SET stock_quantity = $1, updated_at = $2 WHERE merchant_id = $3 AND id = $4`,
			m.QuantityAfter, m.CreatedAt, m.MerchantID, m.ProductID)
		if err != nil {
			return fmt.Errorf("update stock: %w", err)
		}
		if _, err := tx.NamedExecContext(ctx, insertQuery, m); err != nil {
			return fmt.Errorf("log movement: %w", err)
		}
		return nil
	})
}

func (r *PGRepository) HasMovement(ctx context.Context, merchantID, productID, referenceType, referenceID string) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS (
            SELECT 1 FROM stock_movements
            WHERE merchant_id = $1 AND product_id = $2 AND reference_type = $3 AND reference_id = $4
        )
    `
	err := r.DB.GetContext(ctx, &exists, query, merchantID, productID, referenceType, referenceID)
	return exists, err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	var items []model.StockMovement
	var count int

	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM stock_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
