package domain

import "time"

// Role - единый для витрины и админки набор ролей.
type Role string

const (
	RoleUser       Role = "user"
	RoleAgent      Role = "agent"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) CanAccessAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

var RoleOptions = []Option{
	{Value: string(RoleUser), Label: "User"},
	{Value: string(RoleAgent), Label: "Agent"},
	{Value: string(RoleAdmin), Label: "Admin"},
	{Value: string(RoleSuperAdmin), Label: "Super Admin"},
}

// AdminUser - пользователь, вошедший в админку (хранится в сессии как admin_user).
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type User struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	AvatarURL string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	Token string
	User  AdminUser
}

// UserCreate - форма создания пользователя. Пароль есть только здесь.
type UserCreate struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required,oneof=user agent admin super_admin"`
}

type UserUpdate struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role" validate:"required,oneof=user agent admin super_admin"`
}

// EditBuffer заполняет форму редактирования; пароль не запрашивается и не показывается.
func (u User) EditBuffer() UserUpdate {
	return UserUpdate{Name: u.Name, Email: u.Email, Role: u.Role}
}
