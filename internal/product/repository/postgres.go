package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/product/dto"
	"github.com/fekuna/omnipos-backoffice-service/pkg/database/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const productColumns = `id, merchant_id, category_id, sku, barcode, name, description,
            cost_price, sale_price, is_active, manage_stock, online_sale, stock_quantity,
            is_composition, image_url, created_at, updated_at`

func (r *PGRepository) Create(ctx context.Context, p *model.Product, relations []model.ComponentRelation) error {
	query := `
        INSERT INTO products (` + productColumns + `)
        VALUES (
            :id, :merchant_id, :category_id, :sku, :barcode, :name, :description,
            :cost_price, :sale_price, :is_active, :manage_stock, :online_sale, :stock_quantity,
            :is_composition, :image_url, :created_at, :updated_at
        )
    `
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		return replaceRelations(ctx, tx, p.ID, relations)
	})
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product, relations []model.ComponentRelation) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            sku = :sku,
            barcode = :barcode,
            name = :name,
            description = :description,
            cost_price = :cost_price,
            sale_price = :sale_price,
            is_active = :is_active,
            manage_stock = :manage_stock,
            online_sale = :online_sale,
            is_composition = :is_composition,
            image_url = :image_url,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	return postgres.WithTx(ctx, r.DB, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		return replaceRelations(ctx, tx, p.ID, relations)
	})
}

// replaceRelations drops every relation owned by parentID and inserts the
// given ones.
func replaceRelations(ctx context.Context, tx *sqlx.Tx, parentID string, relations []model.ComponentRelation) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM component_relations WHERE parent_product_id = $1`, parentID); err != nil {
		return fmt.Errorf("clear component relations: %w", err)
	}
	if len(relations) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]map[string]interface{}, len(relations))
	for i, rel := range relations {
		id := rel.ID
		if id == "" {
			id = uuid.New().String()
		}
		rows[i] = map[string]interface{}{
			"id":                   id,
			"parent_product_id":    parentID,
			"component_product_id": rel.ComponentProductID,
			"quantity":             rel.Quantity,
			"created_at":           now,
		}
	}
	_, err := tx.NamedExecContext(ctx, `
        INSERT INTO component_relations (id, parent_product_id, component_product_id, quantity, created_at)
        VALUES (:id, :parent_product_id, :component_product_id, :quantity, :created_at)
    `, rows)
	if err != nil {
		return fmt.Errorf("insert component relations: %w", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND merchant_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, merchantID string, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE merchant_id = ? AND id IN (?)`, merchantID, ids)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find products by id: %w", err)
	}
	return products, nil
}

func (r *PGRepository) FindByCode(ctx context.Context, merchantID, code string) (*model.Product, error) {
	var product model.Product
	query := `
        SELECT ` + productColumns + ` FROM products
        WHERE merchant_id = $1 AND is_active = true AND (barcode = $2 OR sku = $2)
        ORDER BY (barcode = $2) DESC
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &product, query, merchantID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.IsComposition != nil {
		conditions = append(conditions, "is_composition = :is_composition")
		args["is_composition"] = *f.IsComposition
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search OR barcode ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var count int
	if err := r.namedGet(ctx, &count, "SELECT count(*) FROM products"+whereClause, args); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	// Sort columns are whitelisted.
	orderBy := "created_at DESC"
	if f.SortBy != "" {
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "sale_price"
		default:
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT %s FROM products%s ORDER BY %s", productColumns, whereClause, orderBy)
	if f.PageSize > 0 {
		offset := (max(f.Page, 1) - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	products := []model.Product{}
	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, count, nil
}

func (r *PGRepository) FindParentIDs(ctx context.Context, merchantID, componentID string) ([]string, error) {
	var ids []string
	err := r.DB.SelectContext(ctx, &ids, `
        SELECT DISTINCT cr.parent_product_id
        FROM component_relations cr
        JOIN products p ON p.id = cr.parent_product_id
        WHERE cr.component_product_id = $1 AND p.merchant_id = $2 AND p.is_active = true
        ORDER BY cr.parent_product_id
    `, componentID, merchantID)
	if err != nil {
		return nil, fmt.Errorf("find parent compositions: %w", err)
	}
	return ids, nil
}

func (r *PGRepository) FindRelations(ctx context.Context, parentIDs []string) ([]model.ComponentRelation, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
        SELECT id, parent_product_id, component_product_id, quantity
        FROM component_relations
        WHERE parent_product_id IN (?)
        ORDER BY created_at ASC, id ASC
    `, parentIDs)
	if err != nil {
		return nil, err
	}

	var relations []model.ComponentRelation
	if err := r.DB.SelectContext(ctx, &relations, r.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("find component relations: %w", err)
	}
	return relations, nil
}

// FindCandidates returns active simple products, never the excluded one.
func (r *PGRepository) FindCandidates(ctx context.Context, f *dto.CandidateFilters) ([]model.Product, error) {
	conditions := []string{"merchant_id = :merchant_id", "is_active = true", "is_composition = false"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.ExcludeID != "" {
		conditions = append(conditions, "id <> :exclude_id")
		args["exclude_id"] = f.ExcludeID
	}
	if f.Query != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search OR barcode ILIKE :search)")
		args["search"] = "%" + f.Query + "%"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf("SELECT %s FROM products WHERE %s ORDER BY name ASC LIMIT %d",
		productColumns, strings.Join(conditions, " AND "), limit)

	q, list, err := sqlx.Named(query, args)
	if err != nil {
		return nil, err
	}
	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(q), list...); err != nil {
		return nil, fmt.Errorf("find component candidates: %w", err)
	}
	return products, nil
}

func (r *PGRepository) Delete(ctx context.Context, merchantID, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET is_active = false, updated_at = NOW() WHERE id = $1 AND merchant_id = $2",
		id, merchantID)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, merchantID, sku, excludeID string) (bool, error) {
	return r.isUnique(ctx, "sku", merchantID, sku, excludeID)
}

func (r *PGRepository) IsBarcodeUnique(ctx context.Context, merchantID, barcode, excludeID string) (bool, error) {
	if barcode == "" {
		return true, nil
	}
	return r.isUnique(ctx, "barcode", merchantID, barcode, excludeID)
}

// isUnique counts other products sharing column. column is never user input.
func (r *PGRepository) isUnique(ctx context.Context, column, merchantID, value, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE merchant_id = $1 AND ` + column + ` = $2`
	args := []interface{}{merchantID, value}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) namedGet(ctx context.Context, dest interface{}, query string, args map[string]interface{}) error {
	q, list, err := sqlx.Named(query, args)
	if err != nil {
		return err
	}
	return r.DB.GetContext(ctx, dest, r.DB.Rebind(q), list...)
}
