package models

// RegisterRequest is the payload for POST /route/register.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// RegisterResponse is the identity returned on successful registration,
// plus an optional token for when the backend starts issuing them.
type RegisterResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Token       string `json:"token,omitempty"`
}

// LoginRequest is the payload for the (future) login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse mirrors RegisterResponse plus an optional token for when
// the backend starts issuing them.
type LoginResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Token       string `json:"token,omitempty"`
}

// User returns the Session Record projection of a register response.
func (r RegisterResponse) User() User {
	return User{ID: r.ID, Username: r.Username, Email: r.Email, PhoneNumber: r.PhoneNumber}
}

// User returns the Session Record projection of a login response.
func (r LoginResponse) User() User {
	return User{ID: r.ID, Username: r.Username, Email: r.Email, PhoneNumber: r.PhoneNumber}
}
