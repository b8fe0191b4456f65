package http

import (
	"errors"
	"net/http"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/commands"
	"github.com/ca-ayumi/fast-food-order-service/internal/core/application/usecases/queries"
	"github.com/ca-ayumi/fast-food-order-service/internal/generated/servers"
	"github.com/ca-ayumi/fast-food-order-service/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps a use case error to an HTTP status. Order matters: a version
// conflict is also an update failure, and update failures wrap storage errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrClientNotFound),
		errors.Is(err, commands.ErrProductsNotFound),
		errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, queries.ErrNoOrdersFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, commands.ErrOrderPersistenceFailed),
		errors.Is(err, commands.ErrOrderUpdateFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrPaymentFailed):
		return http.StatusBadGateway
	case errors.Is(err, commands.ErrInvalidStatus),
		errors.Is(err, commands.ErrInvalidTransition),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	code := statusFor(err)

	message := err.Error()
	switch code {
	case http.StatusUnprocessableEntity:
		if errors.Is(err, commands.ErrOrderPersistenceFailed) {
			message = commands.ErrOrderPersistenceFailed.Error()
		} else {
			message = commands.ErrOrderUpdateFailed.Error()
		}
	case http.StatusBadGateway:
		message = commands.ErrPaymentFailed.Error()
	case http.StatusInternalServerError:
		message = http.StatusText(code)
	}

	if code >= http.StatusInternalServerError || code == http.StatusUnprocessableEntity {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "status", code, "error", err)
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}
