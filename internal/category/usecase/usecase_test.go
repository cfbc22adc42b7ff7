package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-backoffice-service/internal/category"
	"github.com/fekuna/omnipos-backoffice-service/internal/category/dto"
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/pkg/logger"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	rows map[string]model.Category
}

func newMemRepo() *memRepo { return &memRepo{rows: map[string]model.Category{}} }

func (m *memRepo) Create(_ context.Context, c *model.Category) error {
	m.rows[c.ID] = *c
	return nil
}

func (m *memRepo) FindByID(_ context.Context, merchantID, id string) (*model.Category, error) {
	c, ok := m.rows[id]
	if !ok || c.MerchantID != merchantID {
		return nil, nil
	}
	return &c, nil
}

func (m *memRepo) FindAll(_ context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var out []model.Category
	for _, c := range m.rows {
		if c.MerchantID == f.MerchantID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, c *model.Category) error {
	m.rows[c.ID] = *c
	return nil
}

func (m *memRepo) Delete(_ context.Context, _, id string) error {
	c := m.rows[id]
	c.IsActive = false
	m.rows[id] = c
	return nil
}

func TestCreateCategoryValidatesParent(t *testing.T) {
	repo := newMemRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	missing := "nope"
	_, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m", Name: "Drinks", ParentID: &missing})
	assert.ErrorIs(t, err, category.ErrNotFound)

	root, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m", Name: "Drinks"})
	require.NoError(t, err)
	assert.True(t, root.IsActive)
	assert.Nil(t, root.Description)

	child, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m", Name: "Soda", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *child.ParentID)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m"})
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)
}

func TestUpdateCategoryRejectsCycles(t *testing.T) {
	repo := newMemRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	a, _ := uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m", Name: "A"})
	b, _ := uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m", Name: "B", ParentID: &a.ID})

	_, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: a.ID, MerchantID: "m", Name: "A", ParentID: &a.ID, IsActive: true})
	assert.ErrorIs(t, err, category.ErrInvalidParent)

	_, err = uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: a.ID, MerchantID: "m", Name: "A", ParentID: &b.ID, IsActive: true})
	assert.ErrorIs(t, err, category.ErrInvalidParent)

	updated, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: b.ID, MerchantID: "m", Name: "B2", IsActive: true})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)
	assert.Equal(t, "B2", repo.rows[b.ID].Name)
}

func TestDeleteCategoryIsSoft(t *testing.T) {
	repo := newMemRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	c, _ := uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m", Name: "A"})
	require.NoError(t, uc.DeleteCategory(ctx, "m", c.ID))
	assert.False(t, repo.rows[c.ID].IsActive)

	assert.ErrorIs(t, uc.DeleteCategory(ctx, "other", c.ID), category.ErrNotFound)
}

func TestListCategoriesAsTree(t *testing.T) {
	repo := newMemRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	a, _ := uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m", Name: "A"})
	_, _ = uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: "m", Name: "B", ParentID: &a.ID})

	tree, count, err := uc.ListCategories(ctx, &dto.CategoryFilters{MerchantID: "m", AsTree: true})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, tree, 1)
	assert.Len(t, tree[0].Children, 1)
}
