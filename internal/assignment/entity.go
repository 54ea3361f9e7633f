// AngelaMos | 2026
// entity.go

package assignment

import (
	"time"
)

// Assignment binds a client institution to the seller responsible for
// it. Creating one is the approval gate that enables a self-registered
// client account.
type Assignment struct {
	ID        string    `db:"id"`
	SellerID  string    `db:"seller_id"`
	ClientID  string    `db:"client_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
