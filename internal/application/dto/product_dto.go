package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para publicar un producto (admin).
type CreateProductRequest struct {
	Title       string          `json:"titulo" validate:"required,max=200"`
	Description string          `json:"descripcion" validate:"required,max=2000"`
	Price       decimal.Decimal `json:"precio"`
	Condition   string          `json:"estado" validate:"required,oneof=nuevo como_nuevo excelente bueno regular"`
	CategoryID  string          `json:"categoria_id" validate:"required"`
	Stock       *int            `json:"stock" validate:"omitempty,min=0"`
	Brand       string          `json:"marca" validate:"omitempty,max=100"`
	Model       string          `json:"modelo" validate:"omitempty,max=100"`
	Featured    bool            `json:"destacado"`
	Location    string          `json:"ubicacion" validate:"omitempty,max=200"`
}

// UpdateProductRequest entrada para editar un producto (sin stock: se repone por inventario).
type UpdateProductRequest struct {
	Title       *string          `json:"titulo" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"descripcion" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"precio"`
	Condition   *string          `json:"estado" validate:"omitempty,oneof=nuevo como_nuevo excelente bueno regular"`
	CategoryID  *string          `json:"categoria_id"`
	Brand       *string          `json:"marca" validate:"omitempty,max=100"`
	Model       *string          `json:"modelo" validate:"omitempty,max=100"`
	Featured    *bool            `json:"destacado"`
	Active      *bool            `json:"activo"`
}

// ProductListRequest filtros del catálogo.
type ProductListRequest struct {
	PageRequest
	CategoryID string `query:"categoria"`
	Condition  string `query:"estado"`
	Query      string `query:"q"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"producto_id"`
	Title       string          `json:"titulo"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Condition   string          `json:"estado"`
	Stock       int             `json:"stock"`
	Brand       string          `json:"marca"`
	Model       string          `json:"modelo"`
	CategoryID  string          `json:"categoria_id"`
	Active      bool            `json:"activo"`
	Featured    bool            `json:"destacado"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductDetailResponse producto con su inventario.
type ProductDetailResponse struct {
	Product   ProductResponse    `json:"producto"`
	Inventory *InventoryResponse `json:"inventario,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Products   []ProductResponse `json:"productos"`
	Pagination Pagination        `json:"paginacion"`
}
