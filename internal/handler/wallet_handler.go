package handler

import (
	"errors"
	"net/http"

	"endowal/internal/authz"
	"endowal/internal/middleware"
	"endowal/internal/models"
	"endowal/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WalletHandler struct {
	repo     *repository.WalletRepository
	resolver *authz.Resolver
}

func NewWalletHandler(repo *repository.WalletRepository, resolver *authz.Resolver) *WalletHandler {
	return &WalletHandler{repo: repo, resolver: resolver}
}

type walletCreateRequest struct {
	ClassroomID  uint  `json:"classroom_id" binding:"required"`
	StudentID    uint  `json:"student_id" binding:"required"`
	BalanceCents int64 `json:"balance_cents"`
}

type walletUpdateRequest struct {
	BalanceCents *int64 `json:"balance_cents"`
}

func (h *WalletHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	skip, limit := listParams(c)
	f := repository.WalletFilter{Skip: skip, Limit: limit}
	classroomID, ok := uintQuery(c, "classroom_id")
	if !ok {
		return
	}
	studentID, ok := uintQuery(c, "student_id")
	if !ok {
		return
	}
	f.ClassroomID = classroomID
	f.StudentID = studentID
	switch {
	case actor.IsStudent():
		if studentID != nil && *studentID != actor.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}
		f.StudentID = &actor.ID
	case actor.IsTeacher():
		if classroomID != nil {
			if _, err := h.resolver.ClassroomOwner(actor, *classroomID); err != nil {
				fail(c, err)
				return
			}
		} else {
			f.OwnerTeacherID = &actor.ID
		}
	}
	wallets, err := h.repo.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wallets)
}

// Create is teacher/admin (route gate); the classroom must exist and a teacher
// must own it.
func (h *WalletHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	var req walletCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := h.resolver.ClassroomOwner(actor, req.ClassroomID); err != nil {
		fail(c, err)
		return
	}
	wallet := &models.StudentWallet{
		ClassroomID:  req.ClassroomID,
		StudentID:    req.StudentID,
		BalanceCents: req.BalanceCents,
	}
	if err := h.repo.Create(wallet); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			conflict(c, "student already has a wallet in this classroom")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, wallet)
}

func (h *WalletHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	wallet, err := h.resolver.Wallet(actor, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *WalletHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Wallet(actor, id); err != nil {
		fail(c, err)
		return
	}
	var req walletUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.BalanceCents != nil {
		fields["balance_cents"] = *req.BalanceCents
	}
	wallet, err := h.repo.Updates(id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *WalletHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Wallet(actor, id); err != nil {
		fail(c, err)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
