package models

// User is the persisted identity for the current logged-in user. At most
// one exists at a time; an absent stored entry means "logged out".
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}
