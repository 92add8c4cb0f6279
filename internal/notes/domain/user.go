package domain

import "time"

type User struct {
	ID           string
	Email        string // globally unique
	PasswordHash string // argon2 encoded
	Role         Role
	TenantID     string // Foreign key to tenants table
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
