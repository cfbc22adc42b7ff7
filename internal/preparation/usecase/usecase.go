package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/preparation"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Locker hands out an exclusive lease and its release function.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

type preparationUseCase struct {
	sales   sale.UseCase
	picks   preparation.PickStore
	locker  Locker
	lockTTL time.Duration
	logger  logger.ZapLogger
}

func NewPreparationUseCase(sales sale.UseCase, picks preparation.PickStore, locker Locker, lockTTL time.Duration, log logger.ZapLogger) preparation.UseCase {
	return &preparationUseCase{
		sales:   sales,
		picks:   picks,
		locker:  locker,
		lockTTL: lockTTL,
		logger:  log,
	}
}

func (uc *preparationUseCase) GetChecklist(ctx context.Context, merchantID, saleID string) (*preparation.Checklist, error) {
	s, err := uc.sales.GetSale(ctx, merchantID, saleID)
	if err != nil {
		return nil, err
	}
	picked, err := uc.picks.Get(ctx, merchantID, saleID)
	if err != nil {
		return nil, err
	}
	return preparation.BuildChecklist(s, picked), nil
}

func (uc *preparationUseCase) Pick(ctx context.Context, merchantID, saleID, lineKey string, qty decimal.Decimal) (*preparation.Checklist, error) {
	c, err := uc.GetChecklist(ctx, merchantID, saleID)
	if err != nil {
		return nil, err
	}
	if !orderstatus.AwaitingPreparation(c.Sale.Status) {
		return nil, preparation.ErrNotAwaiting
	}
	line, ok := c.Line(lineKey)
	if !ok {
		return nil, preparation.ErrLineNotFound
	}

	qty = preparation.Clamp(qty, line.Required)
	if err := uc.picks.Set(ctx, merchantID, saleID, lineKey, qty); err != nil {
		return nil, err
	}
	for i := range c.Lines {
		if c.Lines[i].Key == lineKey {
			c.Lines[i].Picked = qty
		}
	}
	return c, nil
}

func (uc *preparationUseCase) CompletePreparation(ctx context.Context, merchantID, saleID string) (*model.Sale, error) {
	release, err := uc.locker.Obtain(ctx, fmt.Sprintf("lock:preparation:%s:%s", merchantID, saleID), uc.lockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("failed to release preparation lock", zap.String("sale_id", saleID), zap.Error(err))
		}
	}()

	c, err := uc.GetChecklist(ctx, merchantID, saleID)
	if err != nil {
		return nil, err
	}
	if !orderstatus.AwaitingPreparation(c.Sale.Status) {
		return nil, preparation.ErrNotAwaiting
	}
	if !c.Complete() {
		return nil, preparation.ErrIncomplete
	}

	target := orderstatus.PreparationTarget(c.Sale.IsDelivery())
	updated, err := uc.sales.SetStatus(ctx, merchantID, saleID, target)
	if err != nil {
		return nil, err
	}

	if err := uc.picks.Clear(ctx, merchantID, saleID); err != nil {
		uc.logger.Warn("failed to clear picking session", zap.String("sale_id", saleID), zap.Error(err))
	}
	uc.logger.Info("preparation completed", zap.String("sale_id", saleID), zap.String("status", target.String()))
	return updated, nil
}
