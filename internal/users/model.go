package users

import "time"

// User is a directory document. Relations (pending requests, friends) are
// stored under separate keys and are not part of the document itself.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Image        string    `json:"image,omitempty"`
	Color        int       `json:"color"`
	ProfileSetup bool      `json:"profileSetup"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the projection returned to other users (display fields only).
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Image     string `json:"image,omitempty"`
	Color     int    `json:"color"`
}

// Public converts a User to its display projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Image:     u.Image,
		Color:     u.Color,
	}
}
