package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jortega/storefront/internal/application"
	"github.com/jortega/storefront/internal/domain/repository"
	"github.com/jortega/storefront/pkg/response"
)

// writeServiceError translates application-layer errors at the
// boundary. Tagged errors become precise 400/404 messages; everything
// else is an infrastructure failure, logged in full and answered with
// an opaque 500 so internal detail never reaches the client.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	switch {
	case errors.Is(err, application.ErrWeakPassword),
		errors.Is(err, application.ErrDuplicateEmail):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, verr.Error(), map[string]string{verr.Field: verr.Reason})
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrUserNotFound), errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, repository.ErrDuplicate):
		response.Error(c, http.StatusBadRequest, "record already exists", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
