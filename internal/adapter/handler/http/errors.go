package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	domainErrors "github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/errors"
	"github.com/wekeepgrowing/toptex-catalog-sync/internal/usecase"
	appErrors "github.com/wekeepgrowing/toptex-catalog-sync/pkg/errors"
	"go.uber.org/zap"
)

var validate = validator.New()

var codeByCatalogType = map[string]string{
	domainErrors.ErrTypeValidation:     appErrors.ErrInvalidArgument,
	domainErrors.ErrTypeAuthentication: appErrors.ErrUnauthenticated,
	domainErrors.ErrTypeRemoteService:  appErrors.ErrBadGateway,
	domainErrors.ErrTypeDownload:       appErrors.ErrBadGateway,
	domainErrors.ErrTypeConfiguration:  appErrors.ErrMisconfigured,
}

// toAppError attaches an application code to domain errors
func toAppError(err error) error {
	var catalogErr *domainErrors.CatalogError
	if errors.As(err, &catalogErr) {
		code, ok := codeByCatalogType[catalogErr.Type]
		if !ok {
			code = appErrors.ErrInternal
		}
		return appErrors.Wrap(err, code, catalogErr.Message)
	}

	if errors.Is(err, usecase.ErrImportInProgress) {
		return appErrors.Wrap(err, appErrors.ErrConflict, err.Error())
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		appErr := appErrors.New(appErrors.ErrInvalidArgument, "invalid request")
		for _, fe := range validationErrs {
			appErr.WithDetail(fe.Field(), fe.Tag())
		}
		return appErr
	}

	return err
}

// respondError logs err and converts it for the echo error handler
func respondError(logger *zap.Logger, err error, msg string, fields ...zap.Field) error {
	converted := toAppError(err)
	appErrors.LogError(logger, converted, msg, fields...)
	return appErrors.ToHTTPError(converted)
}

func badRequest(message string) error {
	return appErrors.ToHTTPError(appErrors.New(appErrors.ErrInvalidArgument, message))
}
