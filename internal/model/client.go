package model

type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	// TotalPurchases only grows, as a side effect of invoice creation.
	TotalPurchases float64 `json:"totalPurchases"`
}

type ClientInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
