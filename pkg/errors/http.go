package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Body is the JSON error payload sent to API clients
type Body struct {
	Code    string                 `json:"code"`
	Message string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ToHTTPError converts err into an echo error whose message is a Body.
// Errors without an AppError in their chain become an opaque 500.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		body := Body{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details}
		return echo.NewHTTPError(ToHTTPStatus(appErr.Code), body).SetInternal(err)
	}

	body := Body{Code: ErrInternal, Message: http.StatusText(http.StatusInternalServerError)}
	return echo.NewHTTPError(http.StatusInternalServerError, body).SetInternal(err)
}
