package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/pkg/response"
	"github.com/oksasatya/hocus-focus/pkg/validation"
)

// writeError maps application errors onto HTTP statuses. Anything unknown is
// logged and reported as a 500 without detail.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrAnonymous):
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrActivityNotFound):
		response.Error[any](c, http.StatusNotFound, "activity not found", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, application.ErrCreatorCannotJoin):
		response.Error[any](c, http.StatusConflict, "creators cannot join their own activity", nil)
	case errors.Is(err, application.ErrNotCreator):
		response.Error[any](c, http.StatusForbidden, "only the creator can modify this activity", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
