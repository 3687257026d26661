// Package errhttp maps domain sentinel errors and request decode failures to
// HTTP status codes. Add a case to mapErrorToStatus for each new domain
// sentinel error.
package errhttp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ghuser/cartengine/pkg/httpx"
	cartdomain "github.com/ghuser/cartengine/services/cart/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is()/errors.As() so wrapped errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, cartdomain.ErrInvalidCartParams):
		return http.StatusBadRequest // 400
	case errors.Is(err, cartdomain.ErrBlankProductName):
		return http.StatusBadRequest // 400
	case errors.Is(err, cartdomain.ErrNegativeAmount):
		return http.StatusBadRequest // 400
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return http.StatusBadRequest // 400 — request body could not be decoded
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest // 400 — empty or truncated request body
	default:
		return http.StatusInternalServerError // 500
	}
}
