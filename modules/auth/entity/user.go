package entity

import "meetmatch/core/entity"

// User is an account. PasswordHash is nil for accounts created through
// Google sign-in only.
type User struct {
	entity.BaseEntity
	Email        string  `db:"email" json:"email"`
	Name         string  `db:"name" json:"name"`
	PasswordHash *string `db:"password_hash" json:"-"`
}

func (User) TableName() string {
	return "users"
}
