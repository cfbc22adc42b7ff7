package dto

type CreateCategoryInput struct {
	MerchantID  string `validate:"required"`
	Name        string `validate:"required,max=120"`
	Description string `validate:"max=500"`
	ImageURL    string `validate:"omitempty,url"`
	SortOrder   int    `validate:"gte=0"`
	ParentID    *string
}

type UpdateCategoryInput struct {
	ID          string `validate:"required"`
	MerchantID  string `validate:"required"`
	Name        string `validate:"required,max=120"`
	Description string `validate:"max=500"`
	ImageURL    string `validate:"omitempty,url"`
	SortOrder   int    `validate:"gte=0"`
	ParentID    *string
	IsActive    bool
}
