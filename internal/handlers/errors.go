package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cvillegar/Odontologia/internal/calendar"
	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/reminders"
	"github.com/cvillegar/Odontologia/internal/scheduling"
	"github.com/cvillegar/Odontologia/internal/services"
	"github.com/cvillegar/Odontologia/internal/store"
)

var (
	errEmailTaken         = errors.New("an account with this email already exists")
	errRegistrationClosed = errors.New("registration is closed: ask a dentist to create your account")
)

var (
	badRequest = []error{
		models.ErrMissingRequiredField,
		models.ErrInvalidField,
		services.ErrInvalidAmount,
		services.ErrInvalidDate,
		scheduling.ErrCrossesMidnight,
		scheduling.ErrInvalidDuration,
		scheduling.ErrInvalidSlot,
		calendar.ErrMissingStart,
		reminders.ErrNoPhone,
		store.ErrUnknownField,
	}
	notFound = []error{
		models.ErrPatientNotFound,
		scheduling.ErrAppointmentNotFound,
	}
	forbidden = []error{
		errRegistrationClosed,
	}
	conflict = []error{
		services.ErrDuplicatePatient,
		scheduling.ErrDuplicateAppointment,
		errEmailTaken,
	}
)

func statusFor(err error) int {
	for _, group := range []struct {
		status int
		errs   []error
	}{
		{http.StatusBadRequest, badRequest},
		{http.StatusForbidden, forbidden},
		{http.StatusNotFound, notFound},
		{http.StatusConflict, conflict},
	} {
		for _, target := range group.errs {
			if errors.Is(err, target) {
				return group.status
			}
		}
	}
	return http.StatusInternalServerError
}

// respondError replies with the status err maps to. Only server-side
// failures are logged.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(status, gin.H{"error": "Failed to save changes: " + err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
}
