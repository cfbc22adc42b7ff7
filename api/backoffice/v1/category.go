package backofficev1

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

type Category struct {
	Id          string      `json:"id"`
	MerchantId  string      `json:"merchant_id"`
	ParentId    string      `json:"parent_id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	ImageUrl    string      `json:"image_url,omitempty"`
	SortOrder   int32       `json:"sort_order"`
	IsActive    bool        `json:"is_active"`
	Children    []*Category `json:"children,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type CreateCategoryRequest struct {
	ParentId    string `json:"parent_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageUrl    string `json:"image_url"`
	SortOrder   int32  `json:"sort_order"`
}

type CategoryResponse struct {
	Category *Category `json:"category"`
}

type GetCategoryRequest struct {
	Id string `json:"id"`
}

type ListCategoriesRequest struct {
	ParentId   *string `json:"parent_id"`
	ActiveOnly bool    `json:"active_only"`
	AsTree     bool    `json:"as_tree"`
	Page       int32   `json:"page"`
	PageSize   int32   `json:"page_size"`
}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
	Total      int32       `json:"total"`
}

type UpdateCategoryRequest struct {
	Id          string `json:"id"`
	ParentId    string `json:"parent_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageUrl    string `json:"image_url"`
	SortOrder   int32  `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
}

type DeleteCategoryRequest struct {
	Id string `json:"id"`
}

type CategoryServiceServer interface {
	CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error)
	GetCategory(context.Context, *GetCategoryRequest) (*CategoryResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	UpdateCategory(context.Context, *UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(context.Context, *DeleteCategoryRequest) (*emptypb.Empty, error)
}

type UnimplementedCategoryServiceServer struct{}

func (UnimplementedCategoryServiceServer) CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error) {
	return nil, unimplemented("CreateCategory")
}
func (UnimplementedCategoryServiceServer) GetCategory(context.Context, *GetCategoryRequest) (*CategoryResponse, error) {
	return nil, unimplemented("GetCategory")
}
func (UnimplementedCategoryServiceServer) ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	return nil, unimplemented("ListCategories")
}
func (UnimplementedCategoryServiceServer) UpdateCategory(context.Context, *UpdateCategoryRequest) (*CategoryResponse, error) {
	return nil, unimplemented("UpdateCategory")
}
func (UnimplementedCategoryServiceServer) DeleteCategory(context.Context, *DeleteCategoryRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteCategory")
}

const categoryService = pkgName + "CategoryService"

var CategoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: categoryService,
	HandlerType: (*CategoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(categoryService, "CreateCategory", CategoryServiceServer.CreateCategory),
		rpc.Unary(categoryService, "GetCategory", CategoryServiceServer.GetCategory),
		rpc.Unary(categoryService, "ListCategories", CategoryServiceServer.ListCategories),
		rpc.Unary(categoryService, "UpdateCategory", CategoryServiceServer.UpdateCategory),
		rpc.Unary(categoryService, "DeleteCategory", CategoryServiceServer.DeleteCategory),
	},
	Metadata: "omnipos/backoffice/v1/category",
}

func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServiceServer) {
	s.RegisterService(&CategoryService_ServiceDesc, srv)
}
