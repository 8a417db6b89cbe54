package model

import "time"

// Product represents the product table entity. Sizes and colors are stored as
// JSON arrays in the database.
type Product struct {
	ID          uint64     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	Price       float64    `db:"price" json:"price"`
	ImageURL    *string    `db:"image_url" json:"image_url"`
	CategoryID  *uint64    `db:"category_id" json:"category_id"`
	Sizes       JSONList   `db:"sizes" json:"sizes"`
	Colors      JSONList   `db:"colors" json:"colors"`
	InStock     bool       `db:"in_stock" json:"in_stock"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type ProductListResponse struct {
	Items      []Product `json:"items"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
}

// CreateProductRequest for admin product creation
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	ImageURL    string   `json:"image_url,omitempty"`
	CategoryID  *uint64  `json:"category_id,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
}

// UpdateProductRequest mirrors creation; zero-value fields are written as-is.
type UpdateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	ImageURL    string   `json:"image_url,omitempty"`
	CategoryID  *uint64  `json:"category_id,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	InStock     bool     `json:"in_stock"`
}
