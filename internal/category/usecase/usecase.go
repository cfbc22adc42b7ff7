package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/category"
	"github.com/fekuna/omnipos-backoffice-service/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxDepth bounds the ancestor walk when checking for parent cycles.
const maxDepth = 32

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	parentID := normalizeParent(input.ParentID)
	if parentID != nil {
		if _, err := uc.mustFind(ctx, input.MerchantID, *parentID); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID:  input.MerchantID,
		ParentID:    parentID,
		Name:        input.Name,
		Description: optional(input.Description),
		ImageURL:    optional(input.ImageURL),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	uc.logger.Info("category created", zap.String("category_id", cat.ID), zap.String("merchant_id", cat.MerchantID))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, merchantID, id string) (*model.Category, error) {
	return uc.mustFind(ctx, merchantID, id)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	categories, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if filters.AsTree {
		return category.BuildTree(categories), count, nil
	}
	return categories, count, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	cat, err := uc.mustFind(ctx, input.MerchantID, input.ID)
	if err != nil {
		return nil, err
	}

	parentID := normalizeParent(input.ParentID)
	if parentID != nil {
		if err := uc.checkParent(ctx, input.MerchantID, cat.ID, *parentID); err != nil {
			return nil, err
		}
	}

	cat.Name = input.Name
	cat.Description = optional(input.Description)
	cat.ImageURL = optional(input.ImageURL)
	cat.SortOrder = input.SortOrder
	cat.IsActive = input.IsActive
	cat.ParentID = parentID
	cat.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, merchantID, id string) error {
	if _, err := uc.mustFind(ctx, merchantID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, merchantID, id)
}

// checkParent refuses a parent that is the category itself or one of its
// descendants.
func (uc *categoryUseCase) checkParent(ctx context.Context, merchantID, id, parentID string) error {
	next := parentID
	for depth := 0; depth < maxDepth; depth++ {
		if next == id {
			return category.ErrInvalidParent
		}
		parent, err := uc.mustFind(ctx, merchantID, next)
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		next = *parent.ParentID
	}
	return category.ErrInvalidParent
}

func (uc *categoryUseCase) mustFind(ctx context.Context, merchantID, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, category.ErrNotFound
	}
	return cat, nil
}

func normalizeParent(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
