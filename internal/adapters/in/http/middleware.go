package http

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"montarota/internal/core/domain/model/user"
	"montarota/internal/core/ports"
	"montarota/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	principalContextKey = "principal"

	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
	DefaultIdempotencyTTL    = 48 * time.Hour
	maxIdempotencyKeyLength  = 255
	websocketTokenQueryParam = "token"
	bearerScheme             = "bearer"
)

var (
	errMissingCredential   = errs.NewUnauthorizedError("missing bearer token")
	errMalformedCredential = errs.NewUnauthorizedError("malformed authorization header")
)

// Authenticate verifies the bearer token and stores the principal on the
// context. With required=false a request without credentials passes through
// anonymously, but a bad token is still rejected. Websocket upgrades may carry
// the token in the "token" query parameter.
func Authenticate(tokens ports.TokenVerifier, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}
			if raw == "" {
				if required {
					return errMissingCredential
				}
				return next(c)
			}

			principal, err := tokens.Verify(raw)
			if err != nil {
				return err
			}
			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		if strings.EqualFold(c.Request().Header.Get(echo.HeaderUpgrade), "websocket") {
			return c.QueryParam(websocketTokenQueryParam), nil
		}
		return "", nil
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, bearerScheme) || token == "" {
		return "", errMalformedCredential
	}
	return token, nil
}

// principalFrom returns the authenticated caller, if any.
func principalFrom(c echo.Context) (user.Principal, bool) {
	p, ok := c.Get(principalContextKey).(user.Principal)
	return p, ok
}

// Idempotency stores the first successful response per Idempotency-Key and
// replays it for later requests with the same key from the same caller. A
// different caller reusing the key gets a conflict. A duplicate arriving while
// the first is still running gets errs.ErrIdempotentRequestActive. Failed
// requests release the key so the client can retry. Requests without the
// header are not deduplicated. A nil store disables the middleware.
func Idempotency(store ports.IdempotencyStore, ttl time.Duration, logger *slog.Logger) echo.MiddlewareFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if store == nil {
			return next
		}
		return func(c echo.Context) error {
			key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
			if key == "" {
				return next(c)
			}
			if len(key) > maxIdempotencyKeyLength {
				return errs.NewValueIsOutOfRangeError(HeaderIdempotencyKey, len(key), 1, maxIdempotencyKeyLength)
			}

			ctx := c.Request().Context()
			fingerprint := requestFingerprint(c)
			record, created, err := store.Reserve(ctx, key, fingerprint, ttl)
			if err != nil {
				return err
			}
			if !created {
				return replay(c, record, fingerprint)
			}

			recorder := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = recorder

			if err = next(c); err != nil || c.Response().Status >= http.StatusInternalServerError {
				release(ctx, store, key, logger)
				return err
			}
			if completeErr := store.Complete(ctx, key, c.Response().Status, recorder.body.Bytes()); completeErr != nil {
				logger.ErrorContext(ctx, "store idempotent response", "key", key, "error", completeErr)
			}
			return nil
		}
	}
}

// requestFingerprint binds a key to the method, path and caller. Anonymous
// callers share the empty identity.
func requestFingerprint(c echo.Context) string {
	fingerprint := c.Request().Method + " " + c.Request().URL.Path
	if p, ok := principalFrom(c); ok {
		fingerprint += " " + p.UserID.String()
	}
	return fingerprint
}

func replay(c echo.Context, record *ports.IdempotencyRecord, fingerprint string) error {
	if record.Fingerprint != fingerprint {
		return errs.NewConflictError("idempotency key", "was used for a different request")
	}
	if record.Status != ports.IdempotencyCompleted {
		return fmt.Errorf("%w: %s", errs.ErrIdempotentRequestActive, record.Key)
	}
	c.Response().Header().Set(HeaderIdempotentReplayed, "true")
	return c.Blob(record.ResponseStatus, echo.MIMEApplicationJSON, record.ResponseBody)
}

// release runs detached from the request so a cancelled client still frees the key.
func release(ctx context.Context, store ports.IdempotencyStore, key string, logger *slog.Logger) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := store.Release(releaseCtx, key); err != nil {
		logger.ErrorContext(ctx, "release idempotency key", "key", key, "error", err)
	}
}

type bodyRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// RequestLogger writes one line per request through slog.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
