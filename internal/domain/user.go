package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Papéis de usuário. O OWNER administra a plataforma; os demais são
// sempre vinculados a um negócio.
const (
	RoleOwner                  = 1
	RoleBusiness               = 2
	RoleSpecialist             = 3
	RoleReceptionist           = 4
	RoleReceptionistSpecialist = 5
	RoleClient                 = 6
)

var roleNames = map[int]string{
	RoleOwner:                  "OWNER",
	RoleBusiness:               "BUSINESS",
	RoleSpecialist:             "SPECIALIST",
	RoleReceptionist:           "RECEPTIONIST",
	RoleReceptionistSpecialist: "RECEPTIONIST_SPECIALIST",
	RoleClient:                 "CLIENT",
}

// RoleName retorna o nome do papel ou string vazia quando desconhecido
func RoleName(roleID int) string {
	return roleNames[roleID]
}

// IsValidRole indica se o papel existe
func IsValidRole(roleID int) bool {
	_, ok := roleNames[roleID]
	return ok
}

type User struct {
	ID           int        `json:"id"`
	BusinessID   *string    `json:"business_id"`
	Name         string     `json:"name"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone"`
	PasswordHash string     `json:"password,omitempty"`
	Active       bool       `json:"active"`
	RoleID       int        `json:"role_id"`
	AvatarURL    *string    `json:"avatar_url"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateUserRequest struct {
	ID        int     `json:"id"`
	Name      *string `json:"name"`
	Lastname  *string `json:"lastname"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Active    *bool   `json:"active"`
	RoleID    *int    `json:"role_id"`
	AvatarURL *string `json:"avatar_url"`
	Deleted   *bool   `json:"deleted"`
}

type Claims struct {
	UserID         int
	UserName       string
	UserLastname   string
	UserEmail      string
	UserActive     bool
	UserRoleID     int
	UserBusinessID string
	UserAvatarURL  *string
	jwt.RegisteredClaims
}

// IsOwner indica se o token pertence ao dono da plataforma
func (c *Claims) IsOwner() bool {
	return c != nil && c.UserRoleID == RoleOwner
}

// CanAccessBusiness verifica se o usuário pode operar sobre o negócio informado
func (c *Claims) CanAccessBusiness(businessID string) bool {
	if c == nil {
		return false
	}
	if c.IsOwner() {
		return true
	}
	return businessID != "" && c.UserBusinessID == businessID
}
