package errors

import (
	"errors"

	"go.uber.org/zap"
)

// Fields describes err for structured logs
func Fields(err error) []zap.Field {
	fields := []zap.Field{zap.Error(err), zap.String("error_code", CodeOf(err))}

	var appErr *AppError
	if errors.As(err, &appErr) && len(appErr.Details) > 0 {
		fields = append(fields, zap.Any("error_details", appErr.Details))
	}
	return fields
}

// LogError logs server side failures at error level and client mistakes at warn level
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	all := append(Fields(err), fields...)
	if ToHTTPStatus(CodeOf(err)) >= 500 {
		logger.Error(msg, all...)
		return
	}
	logger.Warn(msg, all...)
}
