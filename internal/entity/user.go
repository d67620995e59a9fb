package entity

import "strings"

const UserStatusActive = "active"

type User struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profile_pic,omitempty"`
	Status     string `json:"status"`
}

// NewUser builds the profile created on the first login of a mailbox.
func NewUser(id int, email string) User {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return User{
		ID:     id,
		Name:   name,
		Email:  email,
		Status: UserStatusActive,
	}
}
