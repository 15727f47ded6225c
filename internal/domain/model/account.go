package model

import "time"

// Role describes the access level resolved from session claims.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleCustomer  Role = "customer"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleAnonymous: 0,
	RoleCustomer:  1,
	RoleAdmin:     2,
}

// Valid reports whether r names a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r grants the access level of min.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// Account describes a registered portal user.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Claims is the verified session identity attached to each request.
type Claims struct {
	UserID int64
	Role   Role
}
