package models

import (
	"fmt"
	"regexp"
)

// Client-side validation rules mirroring the backend's documented
// constraints. These run before any network call; a non-empty result
// means the request never leaves the process.

const (
	usernameMinLength = 3
	usernameMaxLength = 50
	passwordMinLength = 8
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^\+\d{10,15}$`)

	passwordLowerRe   = regexp.MustCompile(`[a-z]`)
	passwordUpperRe   = regexp.MustCompile(`[A-Z]`)
	passwordDigitRe   = regexp.MustCompile(`\d`)
	passwordSpecialRe = regexp.MustCompile(`[@$!%*?&]`)
)

// ValidateRegister maps a registration payload to field name -> error
// message. An empty map means the payload is valid.
func ValidateRegister(req RegisterRequest) map[string]string {
	errs := make(map[string]string)

	switch {
	case req.Username == "":
		errs["username"] = "Username é obrigatório"
	case len(req.Username) < usernameMinLength || len(req.Username) > usernameMaxLength:
		errs["username"] = fmt.Sprintf("Username deve ter entre %d e %d caracteres", usernameMinLength, usernameMaxLength)
	case !usernameRe.MatchString(req.Username):
		errs["username"] = "Username deve ter 3-50 caracteres, apenas letras, números, _ e -"
	}

	switch {
	case req.Email == "":
		errs["email"] = "Email é obrigatório"
	case !emailRe.MatchString(req.Email):
		errs["email"] = "Email deve ter formato válido com domínio permitido (ex: @gmail.com, @hotmail.com, @outlook.com)"
	}

	switch {
	case req.Password == "":
		errs["password"] = "Senha é obrigatória"
	case len(req.Password) < passwordMinLength:
		errs["password"] = fmt.Sprintf("Senha deve ter no mínimo %d caracteres", passwordMinLength)
	case !validPassword(req.Password):
		errs["password"] = "Senha deve ter no mínimo 8 caracteres, incluindo maiúscula, minúscula, número e caractere especial"
	}

	if req.PhoneNumber != "" && !phoneRe.MatchString(req.PhoneNumber) {
		errs["phone_number"] = "Telefone deve estar no formato internacional (+5511999999999)"
	}

	return errs
}

// ValidateLogin maps a login payload to field name -> error message.
func ValidateLogin(req LoginRequest) map[string]string {
	errs := make(map[string]string)
	if req.Email == "" {
		errs["email"] = "Email é obrigatório"
	}
	if req.Password == "" {
		errs["password"] = "Senha é obrigatória"
	}
	return errs
}

func validPassword(pw string) bool {
	return passwordLowerRe.MatchString(pw) &&
		passwordUpperRe.MatchString(pw) &&
		passwordDigitRe.MatchString(pw) &&
		passwordSpecialRe.MatchString(pw)
}
