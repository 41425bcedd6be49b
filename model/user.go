// Package model contains the database entities managed by the
// authentication core
package model

import "time"

// AuthMethod tags how an account authenticates. A password account carries
// an argon2id hash, a federated account carries none. The two constructors
// below are the only way user rows are built, which keeps the illegal
// "has password AND federated" state unrepresentable.
type AuthMethod string

const (
	AuthMethodPassword  AuthMethod = "password"
	AuthMethodFederated AuthMethod = "federated"
)

type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	AuthMethod   AuthMethod `gorm:"not null" json:"-"`
	PasswordHash string     `json:"-"`

	FullName       string `json:"fullName"`
	Phone          string `json:"phone"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`

	CreatedAt time.Time `json:"createdAt"`
}

// Federated reports whether the account is owned by an external identity
// provider and therefore has no usable password.
func (u *User) Federated() bool {
	return u.AuthMethod == AuthMethodFederated
}

// NewPasswordUser builds a local account. The hash must already be encoded,
// this constructor never sees a plaintext password.
func NewPasswordUser(id, email, passwordHash string) *User {
	return &User{
		ID:           id,
		Email:        email,
		AuthMethod:   AuthMethodPassword,
		PasswordHash: passwordHash,
	}
}

// NewFederatedUser builds an account owned by an external identity provider.
func NewFederatedUser(id, email, fullName, profilePicture string) *User {
	return &User{
		ID:             id,
		Email:          email,
		AuthMethod:     AuthMethodFederated,
		FullName:       fullName,
		ProfilePicture: profilePicture,
	}
}
