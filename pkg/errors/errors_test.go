package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToHTTPError(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   Body
	}{
		{
			name:       "bad gateway keeps the client message",
			err:        Wrap(cause, ErrBadGateway, "vendor is unavailable"),
			wantStatus: http.StatusBadGateway,
			wantBody:   Body{Code: ErrBadGateway, Message: "vendor is unavailable"},
		},
		{
			name:       "wrapped app error is found in the chain",
			err:        fmt.Errorf("import: %w", New(ErrConflict, "import already running")),
			wantStatus: http.StatusConflict,
			wantBody:   Body{Code: ErrConflict, Message: "import already running"},
		},
		{
			name:       "unknown error hides its text",
			err:        cause,
			wantStatus: http.StatusInternalServerError,
			wantBody:   Body{Code: ErrInternal, Message: "Internal Server Error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := ToHTTPError(tt.err)
			require.NotNil(t, httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
			assert.Equal(t, tt.wantBody, httpErr.Message)
			assert.ErrorIs(t, httpErr.Internal, tt.err)
		})
	}
}

func TestToHTTPError_PassesEchoErrors(t *testing.T) {
	original := echo.NewHTTPError(http.StatusTeapot, "short and stout")

	assert.Same(t, original, ToHTTPError(original))
	assert.Nil(t, ToHTTPError(nil))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "nothing"))

	cause := errors.New("boom")
	err := Wrap(cause, ErrTimeout, "vendor timed out")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrTimeout, CodeOf(err))
	assert.Equal(t, "vendor timed out: boom", err.Error())
	assert.Equal(t, ErrInternal, CodeOf(cause))
}

func TestLogError_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	LogError(logger, New(ErrInvalidArgument, "bad sku").WithDetail("sku", "X1"), "rejected")
	LogError(logger, New(ErrMisconfigured, "no api key"), "failed")
	LogError(logger, nil, "ignored")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "INVALID_ARGUMENT", entries[0].ContextMap()["error_code"])
	assert.Equal(t, map[string]interface{}{"sku": "X1"}, entries[0].ContextMap()["error_details"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
