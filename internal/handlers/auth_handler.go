package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cvillegar/Odontologia/internal/middleware"
	"github.com/cvillegar/Odontologia/internal/models"
	"github.com/cvillegar/Odontologia/internal/store"
	"github.com/cvillegar/Odontologia/internal/utils"
)

type RegisterUserRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Rol      string `json:"rol" binding:"omitempty,oneof=dentist assistant"`
}

// --- REGISTER ---

// RegisterUser creates the first operator account. It is always a dentist.
// Once any account exists this route is closed and new operators are added
// by a dentist through CreateUser.
func (h *Handler) RegisterUser(c *gin.Context) {
	if h.Repo.Users.Len() > 0 {
		h.respondError(c, errRegistrationClosed)
		return
	}
	h.createUser(c, true)
}

// CreateUser adds an operator account on behalf of a signed-in dentist.
func (h *Handler) CreateUser(c *gin.Context) {
	h.createUser(c, false)
}

func (h *Handler) createUser(c *gin.Context, bootstrap bool) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	role := req.Rol
	if role == "" || bootstrap {
		role = models.RoleDentist
	}
	user := models.User{
		ID:           uuid.NewString(),
		Nombre:       strings.TrimSpace(req.Nombre),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		Rol:          role,
	}

	// a concurrent bootstrap may have won since the Len check
	closed := false
	err = h.Repo.Users.AppendUnless(c.Request.Context(), user, func(u models.User) bool {
		if bootstrap {
			closed = true
			return true
		}
		return u.Email == user.Email
	})
	if err != nil {
		switch {
		case closed:
			err = errRegistrationClosed
		case errors.Is(err, store.ErrConflict):
			err = errEmailTaken
		}
		h.respondError(c, err)
		return
	}
	h.log.WithFields(logrus.Fields{"user_id": user.ID, "rol": user.Rol}).Info("User registered")
	c.JSON(http.StatusCreated, user)
}

// --- LOGIN ---

func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(loginReq.Email))
	user, ok := h.Repo.Users.First(func(u models.User) bool { return u.Email == email })
	if !ok || !utils.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Issuer.Generate(user.ID, user.Rol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// --- CURRENT USER ---

// GetCurrentUser returns the account behind the request's token.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	user, ok := h.Repo.Users.First(func(u models.User) bool { return u.ID == userID })
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
