package models

// Order es un pedido inmutable. Items es una copia de las líneas del carrito,
// no una referencia a los productos vivos.
type Order struct {
	ID            int64   `json:"id"`
	CreatedAt     string  `json:"createdAt"`
	Email         string  `json:"email"`
	Delivery      any     `json:"delivery"`
	PaymentMethod string  `json:"paymentMethod"`
	Items         []any   `json:"items"`
	Subtotal      float64 `json:"subtotal"`
	Note          string  `json:"note"`
}

// OrderInput es el cuerpo de POST /api/orders
type OrderInput struct {
	Email         string `json:"email" binding:"required"`
	Items         []any  `json:"items" binding:"required,min=1"`
	Delivery      any    `json:"delivery"`
	PaymentMethod string `json:"paymentMethod"`
	Subtotal      any    `json:"subtotal"`
	Note          string `json:"note"`
}

// OrderCreated es la respuesta al crear un pedido
type OrderCreated struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

// UserInput es el cuerpo de POST /api/users
type UserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
}
