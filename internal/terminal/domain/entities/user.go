package entities

import "time"

// Role определяет роль пользователя терминала.
type Role string

// Роли пользователей.
const (
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// User представляет пользователя магазина.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	IsActive  *bool      `json:"isActive,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// UserInput содержит поля для создания или частичного обновления пользователя.
type UserInput struct {
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
