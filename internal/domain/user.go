package domain

type UserRole string

const (
	UserRoleCustomer    UserRole = "CUSTOMER"
	UserRoleAdmin       UserRole = "ADMIN"
	UserRoleMaintenance UserRole = "MAINTENANCE"
)

type User struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}
