package service

import (
	"fmt"
	"net/http"
	"strings"

	"lycosidae/pkg/apierrors"
)

// Operation names used to scope translated error messages.
const (
	OpRegister = "registro"
	OpLogin    = "login"
)

// Shared error-translation policy: maps a Structured API Error, tagged
// with an operation, to an operation-scoped, human-readable message.
// The original error stays in the chain so callers can still inspect
// status and code.
func translateAuthError(err error, operation string) error {
	apiErr, ok := apierrors.AsAPIError(err)
	if !ok {
		return err
	}

	switch apiErr.Status {
	case http.StatusBadRequest:
		return apierrors.Wrap(err, apiErr.Code, fmt.Sprintf("Dados inválidos para %s. Verifique os campos.", operation))

	case http.StatusConflict:
		return apierrors.Wrap(err, apiErr.Code, "Email ou username já está em uso.")

	case http.StatusUnprocessableEntity:
		if raw := apiErr.ValidationErrors(); len(raw) > 0 {
			friendly := make([]string, 0, len(raw))
			for _, msg := range raw {
				friendly = append(friendly, friendlyValidationMessage(msg))
			}
			return apierrors.Wrap(err, apiErr.Code, strings.Join(friendly, ". "))
		}
		return apierrors.Wrap(err, apiErr.Code, "Dados de registro inválidos. Verifique os campos.")

	case http.StatusTooManyRequests:
		retryAfter := apierrors.RetryAfterOf(err)
		if retryAfter == 0 {
			retryAfter = 60
		}
		return apierrors.Wrap(err, apiErr.Code, fmt.Sprintf("Muitas tentativas de %s. Tente novamente em %ds.", operation, retryAfter))

	case http.StatusInternalServerError, http.StatusBadGateway:
		if apiErr.BodyString("code") == "EXTERNAL_SERVICE_ERROR" ||
			strings.Contains(apiErr.Message, "Interpreter communication error") {
			return apierrors.Wrap(err, apiErr.Code, `Sistema temporariamente indisponível. O serviço "interpreter" não está rodando. Contate o administrador.`)
		}
		return apierrors.Wrap(err, apiErr.Code, "Erro interno do servidor. Tente novamente mais tarde.")
	}

	if apiErr.Message != "" {
		return err
	}
	return apierrors.Wrap(err, apiErr.Code, fmt.Sprintf("Erro no %s", operation))
}

// friendlyValidationMessage rewords known backend validation strings.
// Unknown strings pass through untouched.
func friendlyValidationMessage(raw string) string {
	switch {
	case strings.Contains(raw, "Email domain not allowed"):
		return "Domínio de email não permitido. Use um email com domínio válido (ex: @gmail.com, @hotmail.com)"
	case strings.Contains(raw, "username"):
		return "Username inválido. Use apenas letras, números, _ e - (3-50 caracteres)"
	case strings.Contains(raw, "password"):
		return "Senha deve ter no mínimo 8 caracteres com maiúscula, minúscula, número e símbolo"
	case strings.Contains(raw, "email"):
		return "Email deve ter formato válido"
	default:
		return raw
	}
}
