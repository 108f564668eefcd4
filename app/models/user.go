package models

import "time"

// User is a club member account. Password holds the bcrypt hash and is empty
// for accounts created through Firebase sign-in.
type User struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	FirebaseUID string    `json:"firebaseUid,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasPassword reports whether the account can log in with email and password
func (u *User) HasPassword() bool {
	return u.Password != ""
}
