// Package store persists users and their login sessions with bun.
package store

import (
	"time"

	"github.com/uptrace/bun"
)

// User is a registered account.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username     string `bun:"username,notnull,unique" json:"username,omitempty"`
	Email        string `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash string `bun:"password_hash,notnull" json:"-"`

	IsActive   bool `bun:"is_active,notnull" json:"is_active"`
	IsAdmin    bool `bun:"is_admin,notnull" json:"is_admin,omitempty"`
	IsVIP      bool `bun:"is_vip,notnull" json:"is_vip,omitempty"`
	IsVerified bool `bun:"is_verified,notnull" json:"is_verified,omitempty"`

	FirstName string `bun:"first_name" json:"first_name,omitempty"`
	LastName  string `bun:"last_name" json:"last_name,omitempty"`
	Avatar    string `bun:"avatar" json:"avatar,omitempty"`
	Bio       string `bun:"profile_bio" json:"bio,omitempty"`
	Website   string `bun:"profile_website" json:"website,omitempty"`

	TimeCreated time.Time  `bun:"time_created,nullzero,notnull,default:current_timestamp" json:"time_created,omitempty"`
	TimeOnline  *time.Time `bun:"time_online,nullzero" json:"time_online,omitempty"`
}

// UserSession is a login session. Sessions are never deleted, only
// deactivated; the per-session token secret is the HMAC key that binds
// access and session tokens to this login.
type UserSession struct {
	bun.BaseModel `bun:"table:user_sessions,alias:uss"`

	ID          int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	OwnerID     int64  `bun:"owner_id,notnull" json:"owner_id,omitempty"`
	TokenSecret string `bun:"token_secret,notnull" json:"-"`
	IsActive    bool   `bun:"is_active,notnull" json:"is_active"`

	ClientIP        string `bun:"client_ip" json:"client_ip,omitempty"`
	ClientUserAgent string `bun:"client_user_agent" json:"client_user_agent,omitempty"`

	TimeCreated time.Time `bun:"time_created,nullzero,notnull,default:current_timestamp" json:"time_created,omitempty"`
}
