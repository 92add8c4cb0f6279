package domain

import "time"

// Note belongs to the tenant it was created under; tenant_id and user_id are
// immutable after creation. Visibility follows tenant membership, not
// authorship: any member of the tenant may read, update or delete it.
type Note struct {
	ID        string
	Title     string
	Content   string
	TenantID  string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
