package domain

import "time"

// User is the domain model for accounts. Google-signup accounts carry no
// password hash. Withdrawal is a soft delete; DeletedAt marks gone accounts.
type User struct {
	ID           int64
	Username     string
	Email        string
	Name         string
	PasswordHash string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}
