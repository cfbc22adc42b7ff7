package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-backoffice-service/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, merchant_id, parent_id, name, description, image_url, sort_order, is_active, created_at, updated_at)
        VALUES (:id, :merchant_id, :parent_id, :name, :description, :image_url, :sort_order, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 AND merchant_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var count int
	if err := r.namedGet(ctx, &count, "SELECT count(*) FROM categories"+whereClause, args); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	query := "SELECT * FROM categories" + whereClause + " ORDER BY sort_order ASC, name ASC"
	if f.PageSize > 0 && !f.AsTree {
		offset := (max(f.Page, 1) - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	categories := []model.Category{}
	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	return categories, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET parent_id = :parent_id,
            name = :name,
            description = :description,
            image_url = :image_url,
            sort_order = :sort_order,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, merchantID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE categories SET is_active = false, updated_at = NOW() WHERE id = $1 AND merchant_id = $2",
		id, merchantID)
	return err
}

func (r *PGRepository) namedGet(ctx context.Context, dest interface{}, query string, args map[string]interface{}) error {
	q, list, err := sqlx.Named(query, args)
	if err != nil {
		return err
	}
	return r.DB.GetContext(ctx, dest, r.DB.Rebind(q), list...)
}
