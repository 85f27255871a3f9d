package handler

import (
	"errors"
	"net/http"

	"endowal/internal/authz"
	"endowal/internal/middleware"
	"endowal/internal/models"
	"endowal/internal/repository"
	"endowal/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	repo     *repository.UserRepository
	resolver *authz.Resolver
}

func NewUserHandler(repo *repository.UserRepository, resolver *authz.Resolver) *UserHandler {
	return &UserHandler{repo: repo, resolver: resolver}
}

type userCreateRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role" binding:"required,oneof=teacher student admin"`
	IsActive *bool  `json:"is_active"`
}

type userUpdateRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Name     *string `json:"name"`
	Role     *string `json:"role" binding:"omitempty,oneof=teacher student admin"`
	IsActive *bool   `json:"is_active"`
}

// List is admin-only (route gate).
func (h *UserHandler) List(c *gin.Context) {
	skip, limit := listParams(c)
	users, err := h.repo.List(repository.UserFilter{
		Role:  c.Query("role"),
		Email: c.Query("email"),
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create is admin-only (route gate); it is the only way to mint admin accounts.
func (h *UserHandler) Create(c *gin.Context) {
	var req userCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	hash, err := service.HashPassword(req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	u := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		IsActive:     active,
		PasswordHash: hash,
	}
	if err := h.repo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			conflict(c, "email already registered")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if err := h.resolver.User(actor, id); err != nil {
		fail(c, err)
		return
	}
	u, err := h.repo.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.repo.GetByID(id); err != nil {
		fail(c, err)
		return
	}
	if err := h.resolver.User(actor, id); err != nil {
		fail(c, err)
		return
	}
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	// Role is fixed at creation unless an admin changes it.
	if req.Role != nil && !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to change role"})
		return
	}
	fields := map[string]interface{}{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hash, err := service.HashPassword(*req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		fields["password_hash"] = hash
	}
	u, err := h.repo.Updates(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			conflict(c, "email already registered")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete is admin-only (route gate).
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
