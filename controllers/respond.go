package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/senku-sen/event-management-system/services"
	"github.com/senku-sen/event-management-system/utils"
)

// respondError maps a service error onto an HTTP status and the response
// envelope. Unrecognized errors become a 500 with the detail logged, not
// disclosed.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrGroupFull):
		utils.Error(c, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		utils.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
