package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cvillegar/Odontologia/internal/middleware"
	"github.com/cvillegar/Odontologia/internal/models"
)

// Routes mounts the public and the token protected routes on r.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	authRoutes := r.Group("/auth")
	{
		// open until the first operator exists
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
	}

	apiRoutes := r.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(h.Issuer))
	{
		apiRoutes.GET("/me", h.GetCurrentUser)
		apiRoutes.POST("/users", middleware.RequireRole(models.RoleDentist), h.CreateUser)

		apiRoutes.GET("/patients", h.ListPatients)
		apiRoutes.POST("/patients", h.CreatePatient)
		apiRoutes.GET("/patients/:cedula", h.GetPatient)
		apiRoutes.PUT("/patients/:cedula/total", h.UpdatePatientTotal)
		apiRoutes.GET("/patients/:cedula/evolutions", h.ListEvolutions)
		apiRoutes.POST("/patients/:cedula/evolutions", h.CreateEvolution)
		apiRoutes.GET("/patients/:cedula/payments", h.GetLedger)
		apiRoutes.POST("/patients/:cedula/payments", h.CreatePayment)
		apiRoutes.GET("/patients/:cedula/payments/export", h.ExportPayments)
		apiRoutes.GET("/patients/:cedula/reminder", h.GetReminderLink)

		apiRoutes.GET("/appointments", h.GetAppointments)
		apiRoutes.POST("/appointments", h.CreateAppointment)
		apiRoutes.DELETE("/appointments", h.DeleteAppointmentBySlot)
		apiRoutes.GET("/appointments/upcoming", h.GetUpcomingAppointments)
		apiRoutes.GET("/appointments/export", h.ExportAppointments)
		apiRoutes.GET("/appointments/options", h.GetAppointmentOptions)
		apiRoutes.DELETE("/appointments/:id", h.DeleteAppointment)

		apiRoutes.GET("/calendar/events", h.GetCalendarEvents)
		apiRoutes.POST("/calendar/selection", h.DescribeSelection)
	}
}
