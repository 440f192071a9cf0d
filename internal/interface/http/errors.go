package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/internal/application"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/complaint"
	"github.com/oksasatya/go-complaint-tracker/pkg/response"
)

// writeError maps application errors onto HTTP statuses. Anything
// unrecognised is logged and reported as 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var (
		ve  *application.ValidationError
		ite *complaint.InvalidTransitionError
	)
	switch {
	case errors.As(err, &ve):
		response.Error[any](c, http.StatusBadRequest, ve.Message, map[string]string{ve.Field: ve.Message})
	case errors.As(err, &ite):
		response.Error[any](c, http.StatusBadRequest, ite.Error(), gin.H{"from": ite.From, "to": ite.To})
	case errors.Is(err, application.ErrComplaintNotFound),
		errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidStage):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrStorageNotConfigured):
		response.Error[any](c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
