package handler

import (
	"net/http"

	"endowal/internal/authz"
	"endowal/internal/middleware"
	"endowal/internal/models"
	"endowal/internal/repository"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	repo     *repository.LedgerRepository
	resolver *authz.Resolver
}

func NewLedgerHandler(repo *repository.LedgerRepository, resolver *authz.Resolver) *LedgerHandler {
	return &LedgerHandler{repo: repo, resolver: resolver}
}

type ledgerCreateRequest struct {
	WalletID     uint   `json:"wallet_id" binding:"required"`
	AssignmentID *uint  `json:"assignment_id"`
	AmountCents  int64  `json:"amount_cents" binding:"required,gt=0"`
	EntryType    string `json:"entry_type" binding:"required,oneof=deposit withdrawal"`
	Source       string `json:"source" binding:"required,oneof=teacher_grant student_action"`
	Memo         string `json:"memo"`
}

type ledgerUpdateRequest struct {
	AssignmentID *uint   `json:"assignment_id"`
	AmountCents  *int64  `json:"amount_cents" binding:"omitempty,gt=0"`
	EntryType    *string `json:"entry_type" binding:"omitempty,oneof=deposit withdrawal"`
	Source       *string `json:"source" binding:"omitempty,oneof=teacher_grant student_action"`
	Memo         *string `json:"memo"`
}

func (h *LedgerHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	skip, limit := listParams(c)
	f := repository.LedgerFilter{Skip: skip, Limit: limit}
	walletID, ok := uintQuery(c, "wallet_id")
	if !ok {
		return
	}
	assignmentID, ok := uintQuery(c, "assignment_id")
	if !ok {
		return
	}
	f.AssignmentID = assignmentID
	if walletID != nil {
		if _, err := h.resolver.Wallet(actor, *walletID); err != nil {
			fail(c, err)
			return
		}
		f.WalletID = walletID
	}
	switch {
	case actor.IsStudent():
		f.StudentID = &actor.ID
	case actor.IsTeacher():
		f.OwnerTeacherID = &actor.ID
	}
	entries, err := h.repo.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Create is teacher/admin (route gate). The wallet chain is authorized and the
// optional assignment reference must exist. The wallet balance is adjusted in
// the same transaction as the insert.
func (h *LedgerHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	var req ledgerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := h.resolver.Wallet(actor, req.WalletID); err != nil {
		fail(c, err)
		return
	}
	if req.AssignmentID != nil {
		if _, err := h.resolver.Assignment(actor, *req.AssignmentID, authz.Read); err != nil {
			fail(c, err)
			return
		}
	}
	entry := &models.LedgerEntry{
		WalletID:     req.WalletID,
		AssignmentID: req.AssignmentID,
		AmountCents:  req.AmountCents,
		EntryType:    req.EntryType,
		Source:       req.Source,
		Memo:         req.Memo,
	}
	if err := h.repo.Create(entry); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *LedgerHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	entry, err := h.resolver.LedgerEntry(actor, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *LedgerHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.LedgerEntry(actor, id); err != nil {
		fail(c, err)
		return
	}
	var req ledgerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.AssignmentID != nil {
		if _, err := h.resolver.Assignment(actor, *req.AssignmentID, authz.Read); err != nil {
			fail(c, err)
			return
		}
	}
	fields := map[string]interface{}{}
	if req.AssignmentID != nil {
		fields["assignment_id"] = *req.AssignmentID
	}
	if req.AmountCents != nil {
		fields["amount_cents"] = *req.AmountCents
	}
	if req.EntryType != nil {
		fields["entry_type"] = *req.EntryType
	}
	if req.Source != nil {
		fields["source"] = *req.Source
	}
	if req.Memo != nil {
		fields["memo"] = *req.Memo
	}
	entry, err := h.repo.Updates(id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *LedgerHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.LedgerEntry(actor, id); err != nil {
		fail(c, err)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
