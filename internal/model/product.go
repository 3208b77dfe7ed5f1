package model

// ProductStatus is derived from stock on every create/update, never set by
// callers.
type ProductStatus string

const (
	StatusDisponible ProductStatus = "Disponible"
	StatusBajoStock  ProductStatus = "Bajo Stock"
	StatusSinStock   ProductStatus = "Sin Stock"
)

type Product struct {
	ID       string        `json:"id"`
	Name     string        `json:"name" validate:"required"`
	Category string        `json:"category" validate:"required"`
	Stock    int           `json:"stock" validate:"gte=0"`
	Price    float64       `json:"price" validate:"gte=0"`
	Status   ProductStatus `json:"status"`
}

// StatusForStock maps a stock level to its status band.
func StatusForStock(stock int) ProductStatus {
	switch {
	case stock <= 0:
		return StatusSinStock
	case stock <= 10:
		return StatusBajoStock
	default:
		return StatusDisponible
	}
}

// ProductInput is the caller-supplied part of a product. ID and status are
// assigned by the state store.
type ProductInput struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Stock    int     `json:"stock" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}
