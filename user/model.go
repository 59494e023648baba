package user

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the user model backing tb_users. Records are owned by storage and
// read-only to the auth core.
type User struct {
	bun.BaseModel `bun:"table:tb_users,alias:usr"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Nickname     string     `bun:"user_nickname,notnull" json:"user_nickname"`
	Email        string     `bun:"user_email,notnull,unique" json:"user_email"`
	ProfileImage string     `bun:"user_profile_image" json:"user_profile_image,omitempty"`
	Active       bool       `bun:"active" json:"active"`
	CreatedAt    *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	LastLoginAt  *time.Time `bun:"last_login_at,nullzero" json:"last_login_at,omitempty"`
}
