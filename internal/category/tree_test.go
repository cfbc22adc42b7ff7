package category

import (
	"testing"

	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(id string, parent string) model.Category {
	c := model.Category{BaseModel: model.BaseModel{ID: id}, Name: id}
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

func TestBuildTree(t *testing.T) {
	flat := []model.Category{
		cat("drinks", ""),
		cat("soda", "drinks"),
		cat("food", ""),
		cat("juice", "drinks"),
		cat("orphan", "missing"),
		cat("cola", "soda"),
	}

	tree := BuildTree(flat)
	require.Len(t, tree, 3)
	assert.Equal(t, "drinks", tree[0].ID)
	assert.Equal(t, "food", tree[1].ID)
	assert.Equal(t, "orphan", tree[2].ID)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "soda", tree[0].Children[0].ID)
	assert.Equal(t, "juice", tree[0].Children[1].ID)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "cola", tree[0].Children[0].Children[0].ID)
	assert.Empty(t, tree[1].Children)
}

func TestBuildTreeSelfParentIsRoot(t *testing.T) {
	tree := BuildTree([]model.Category{cat("loop", "loop")})
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Children)
}
