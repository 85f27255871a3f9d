package handler

import (
	"errors"
	"log"
	"net/http"

	"endowal/internal/middleware"
	"endowal/internal/repository"
	"endowal/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc      *service.AuthService
	userRepo *repository.UserRepository
}

func NewAuthHandler(svc *service.AuthService, userRepo *repository.UserRepository) *AuthHandler {
	return &AuthHandler{svc: svc, userRepo: userRepo}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	u, access, err := h.svc.Register(req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			conflict(c, err.Error())
			return
		}
		log.Printf("[auth] register failed: email=%s err=%v", req.Email, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":         u,
		"access_token": access,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	u, access, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCreds):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInactiveUser):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			fail(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         u,
		"access_token": access,
	})
}

// Me returns the authenticated user's own profile.
func (h *AuthHandler) Me(c *gin.Context) {
	actor := middleware.GetActor(c)
	u, err := h.userRepo.GetByID(actor.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
