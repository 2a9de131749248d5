package logger

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	appErrors "github.com/wekeepgrowing/toptex-catalog-sync/pkg/errors"
	"go.uber.org/zap"
)

// NewEchoRequestLogger logs every request except health probes
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		HandleError:  true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogURI:       true,
		LogRoutePath: true,
		LogRequestID: true,
		LogStatus:    true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.method", v.Method),
				zap.String("request.uri", v.URI),
				zap.String("request.route", v.RoutePath),
				zap.String("request.request_id", v.RequestID),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
			}

			switch {
			case v.Error != nil:
				logger.Error("Request failed", append(fields, zap.Error(v.Error))...)
			case v.Status >= 500:
				logger.Error("Server error", fields...)
			case v.Status >= 400:
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
			return nil
		},
	})
}

// NewEchoErrorHandler renders errors as JSON and logs server side failures.
// Bodies built by pkg/errors are sent unchanged; anything else becomes {"error": ...}.
func NewEchoErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		var body interface{} = echo.Map{"error": http.StatusText(code)}
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch m := he.Message.(type) {
			case string:
				body = echo.Map{"error": m}
			case appErrors.Body:
				body = m
			default:
				body = echo.Map{"error": http.StatusText(code)}
			}
		}

		if code >= 500 {
			logger.Error("HTTP error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path))
		}

		if c.Response().Committed {
			return
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Error("Failed to send error response", zap.Error(err))
		}
	}
}

// EchoZapLogger lets echo's internal logger write through zap
type EchoZapLogger struct {
	*zap.SugaredLogger
	prefix string
}

// NewEchoZapLogger wraps a zap logger as echo.Logger
func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	return &EchoZapLogger{SugaredLogger: logger.Named("echo").Sugar()}
}

var _ echo.Logger = (*EchoZapLogger)(nil)

func (l *EchoZapLogger) Output() io.Writer { return zapWriter{l.SugaredLogger} }
func (l *EchoZapLogger) SetOutput(io.Writer) {}
func (l *EchoZapLogger) Level() log.Lvl { return log.INFO }
func (l *EchoZapLogger) SetLevel(log.Lvl) {}
func (l *EchoZapLogger) SetHeader(string) {}
func (l *EchoZapLogger) Prefix() string { return l.prefix }
func (l *EchoZapLogger) SetPrefix(p string) { l.prefix = p }
func (l *EchoZapLogger) Print(i ...interface{}) { l.Info(i...) }
func (l *EchoZapLogger) Printf(format string, args ...interface{}) { l.Infof(format, args...) }
func (l *EchoZapLogger) Printj(j log.JSON) { l.Infow("json_message", "json", j) }
func (l *EchoZapLogger) Debugj(j log.JSON) { l.Debugw("json_message", "json", j) }
func (l *EchoZapLogger) Infoj(j log.JSON) { l.Infow("json_message", "json", j) }
func (l *EchoZapLogger) Warnj(j log.JSON) { l.Warnw("json_message", "json", j) }
func (l *EchoZapLogger) Errorj(j log.JSON) { l.Errorw("json_message", "json", j) }
func (l *EchoZapLogger) Fatalj(j log.JSON) { l.Fatalw("json_message", "json", j) }
func (l *EchoZapLogger) Panicj(j log.JSON) { l.Panicw("json_message", "json", j) }

type zapWriter struct {
	logger *zap.SugaredLogger
}

func (w zapWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(p))
	return len(p), nil
}
