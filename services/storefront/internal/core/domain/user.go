package domain

import "time"

// Role - единое перечисление ролей для витрины и админки.
// Витрина получает только user/agent/admin, super_admin встречается лишь в админке.
type Role string

const (
	RoleUser       Role = "user"
	RoleAgent      Role = "agent"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// CanPublishDirectly: объявления агентов и администраторов публикуются без модерации.
func (r Role) CanPublishDirectly() bool {
	return r == RoleAgent || r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FullName  string    `json:"full_name,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName: API возвращает то name, то full_name.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Name
}

type AuthResult struct {
	Token string
	User  User
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

type ProfileUpdate struct {
	FullName  string `json:"full_name" validate:"required"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// ApplyTo сливает изменения профиля в сохраненного пользователя.
func (u ProfileUpdate) ApplyTo(user User) User {
	user.FullName = u.FullName
	user.Name = u.FullName
	user.Phone = u.Phone
	if u.AvatarURL != "" {
		user.AvatarURL = u.AvatarURL
	}
	return user
}
