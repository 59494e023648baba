package admin

import (
	"time"

	"github.com/uptrace/bun"
)

// Admin is the admin model backing tb_admins. The password column stores an
// argon2id hash, never cleartext.
type Admin struct {
	bun.BaseModel `bun:"table:tb_admins,alias:adm"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Email        string     `bun:"admin_email,notnull,unique" json:"admin_email"`
	PasswordHash string     `bun:"admin_password,notnull" json:"-"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
