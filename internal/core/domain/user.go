package domain

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// User models an authenticated actor in the system.
type User struct {
	Pkey         string `json:"pkey"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}
