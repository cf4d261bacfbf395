package models

type User struct {
	// ID es el timestamp de creación en formato texto
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}
