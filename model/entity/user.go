package entity

import (
	"strings"

	"procure.GO/core/errs"
)

type Role string

const (
	RoleAdmin            Role = "admin"
	RoleSalesManager     Role = "sales_manager"
	RoleSalesStaff       Role = "sales_staff"
	RolePurchaseManager  Role = "purchase_manager"
	RolePurchaseStaff    Role = "purchase_staff"
	RoleInventoryManager Role = "inventory_manager"
	RoleInventoryStaff   Role = "inventory_staff"
	RoleFinanceManager   Role = "finance_manager"
)

// Roles lists every assignable role.
var Roles = []Role{
	RoleAdmin,
	RoleSalesManager, RoleSalesStaff,
	RolePurchaseManager, RolePurchaseStaff,
	RoleInventoryManager, RoleInventoryStaff,
	RoleFinanceManager,
}

// ParseRole accepts the canonical names and their dashed or spaced variants ("Purchase Manager").
func ParseRole(s string) (Role, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, r := range Roles {
		if string(r) == norm {
			return r, nil
		}
	}
	return "", errs.Invalid("unknown role %q", s)
}

// User holds an account. PasswordHash is a bcrypt hash, never the clear-text password.
type User struct {
	ID           string `json:"user_id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errs.Invalid("user %s: username is required", u.ID)
	}
	if strings.ContainsAny(u.Username, " \t") {
		return errs.Invalid("user %s: username must not contain spaces", u.ID)
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}
