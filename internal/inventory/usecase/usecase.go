package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/event"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/cache"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Locker is the SET NX lock of the cache client.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

type inventoryUseCase struct {
	repo   inventory.Repository
	locker Locker
	logger logger.ZapLogger
	now    func() time.Time
}

func NewInventoryUseCase(repo inventory.Repository, locker Locker, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		logger: log,
		now:    time.Now,
	}
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockLevel, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var level *model.StockLevel
	err := uc.withLock(ctx, input.MerchantID, input.ProductID, func() error {
		current, err := uc.repo.GetLevel(ctx, input.MerchantID, input.ProductID)
		if err != nil {
			return err
		}
		if current == nil {
			return inventory.ErrNotFound
		}
		if !current.ManageStock {
			return inventory.ErrNotManaged
		}

		after := current.StockQuantity.Add(input.QuantityChange)
		if after.IsNegative() {
			return inventory.ErrInsufficientStock
		}

		m := uc.movement(current, model.MovementAdjustment, input.QuantityChange)
		m.Notes = input.Reason
		if input.UserID != "" {
			m.CreatedBy = &input.UserID
		}
		if err := uc.repo.ApplyMovement(ctx, m); err != nil {
			return err
		}

		current.StockQuantity = after
		level = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return level, nil
}

func (uc *inventoryUseCase) DeductForSale(ctx context.Context, merchantID, saleID string, lines []event.StockLine) error {
	totals, order := sumLines(lines)
	if len(order) == 0 {
		return nil
	}

	levels, err := uc.repo.GetLevels(ctx, merchantID, order)
	if err != nil {
		return err
	}
	managed := make(map[string]bool, len(levels))
	for _, l := range levels {
		managed[l.ProductID] = l.ManageStock
	}

	for _, productID := range order {
		if !managed[productID] {
			continue
		}
		err := uc.withLock(ctx, merchantID, productID, func() error {
			return uc.deduct(ctx, merchantID, productID, saleID, totals[productID])
		})
		if err != nil {
			return fmt.Errorf("deduct %s: %w", productID, err)
		}
	}
	return nil
}

// deduct records one sale movement. Stock may go negative: the goods have
// already left the counter.
func (uc *inventoryUseCase) deduct(ctx context.Context, merchantID, productID, saleID string, qty decimal.Decimal) error {
	done, err := uc.repo.HasMovement(ctx, merchantID, productID, inventory.ReferenceSale, saleID)
	if err != nil {
		return err
	}
	if done {
		uc.logger.Debug("sale already deducted", zap.String("sale_id", saleID), zap.String("product_id", productID))
		return nil
	}

	current, err := uc.repo.GetLevel(ctx, merchantID, productID)
	if err != nil || current == nil {
		return err
	}

	m := uc.movement(current, model.MovementSale, qty.Neg())
	ref := inventory.ReferenceSale
	m.ReferenceType = &ref
	m.ReferenceID = &saleID
	if err := uc.repo.ApplyMovement(ctx, m); err != nil {
		return err
	}
	if m.QuantityAfter.IsNegative() {
		uc.logger.Warn("stock below zero",
			zap.String("product_id", productID),
			zap.String("quantity", m.QuantityAfter.String()))
	}
	return nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *inventoryUseCase) movement(level *model.StockLevel, kind model.MovementType, change decimal.Decimal) *model.StockMovement {
	return &model.StockMovement{
		ID:             uuid.New().String(),
		MerchantID:     level.MerchantID,
		ProductID:      level.ProductID,
		MovementType:   kind,
		QuantityChange: change,
		QuantityBefore: level.StockQuantity,
		QuantityAfter:  level.StockQuantity.Add(change),
		CreatedAt:      uc.now(),
	}
}

// withLock runs fn while holding the per-product stock lock, retrying a few
// times before giving up with cache.ErrLockNotObtained.
func (uc *inventoryUseCase) withLock(ctx context.Context, merchantID, productID string, fn func() error) error {
	key := fmt.Sprintf("lock:stock:%s:%s", merchantID, productID)
	value := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.String("key", key), zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		if i == lockAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	if !acquired {
		return cache.ErrLockNotObtained
	}
	defer func() {
		if err := uc.locker.ReleaseLock(context.WithoutCancel(ctx), key, value); err != nil {
			uc.logger.Warn("failed to release stock lock", zap.String("key", key), zap.Error(err))
		}
	}()

	return fn()
}

// sumLines merges repeated products, keeping first-seen order.
func sumLines(lines []event.StockLine) (map[string]decimal.Decimal, []string) {
	totals := make(map[string]decimal.Decimal, len(lines))
	var order []string
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			continue
		}
		if _, ok := totals[l.ProductID]; !ok {
			order = append(order, l.ProductID)
		}
		totals[l.ProductID] = totals[l.ProductID].Add(l.Quantity)
	}
	return totals, order
}
