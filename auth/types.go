package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Role discriminates the two principal kinds carried in session claims.
type Role = string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the read-only identity the auth core works with. Storage owns
// the records; adapters in the user and admin packages map them here.
type Principal struct {
	ID        int64
	Kind      Role
	Nickname  string
	CreatedAt *time.Time
}

// UserStore is the user-storage collaborator consumed by the auth core.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (Principal, error)
	// GetOrCreateByEmail is idempotent: repeated calls with the same email
	// never create duplicate principals.
	GetOrCreateByEmail(ctx context.Context, email, name, avatar string) (Principal, error)
}

// AdminStore resolves admin principals for the refresh path.
type AdminStore interface {
	GetByID(ctx context.Context, id int64) (Principal, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
