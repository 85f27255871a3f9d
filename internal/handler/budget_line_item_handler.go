package handler

import (
	"net/http"

	"endowal/internal/authz"
	"endowal/internal/middleware"
	"endowal/internal/models"
	"endowal/internal/repository"

	"github.com/gin-gonic/gin"
)

type LineItemHandler struct {
	repo     *repository.LineItemRepository
	resolver *authz.Resolver
}

func NewLineItemHandler(repo *repository.LineItemRepository, resolver *authz.Resolver) *LineItemHandler {
	return &LineItemHandler{repo: repo, resolver: resolver}
}

type lineItemCreateRequest struct {
	SubmissionID uint   `json:"submission_id" binding:"required"`
	Category     string `json:"category" binding:"required"`
	AmountCents  int64  `json:"amount_cents" binding:"required,gte=0"`
}

type lineItemUpdateRequest struct {
	Category    *string `json:"category"`
	AmountCents *int64  `json:"amount_cents" binding:"omitempty,gte=0"`
}

// List requires a submission_id for non-admins; line items have no per-actor
// scope of their own beyond the submission chain.
func (h *LineItemHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	skip, limit := listParams(c)
	f := repository.LineItemFilter{Skip: skip, Limit: limit}
	submissionID, ok := uintQuery(c, "submission_id")
	if !ok {
		return
	}
	if submissionID == nil && !actor.IsAdmin() {
		badRequest(c, "submission_id is required")
		return
	}
	if submissionID != nil {
		if _, err := h.resolver.Submission(actor, *submissionID); err != nil {
			fail(c, err)
			return
		}
		f.SubmissionID = submissionID
	}
	items, err := h.repo.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *LineItemHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	var req lineItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := h.resolver.Submission(actor, req.SubmissionID); err != nil {
		fail(c, err)
		return
	}
	item := &models.BudgetLineItem{
		SubmissionID: req.SubmissionID,
		Category:     req.Category,
		AmountCents:  req.AmountCents,
	}
	if err := h.repo.Create(item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *LineItemHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	item, err := h.resolver.LineItem(actor, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *LineItemHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.LineItem(actor, id); err != nil {
		fail(c, err)
		return
	}
	var req lineItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.AmountCents != nil {
		fields["amount_cents"] = *req.AmountCents
	}
	item, err := h.repo.Updates(id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *LineItemHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.LineItem(actor, id); err != nil {
		fail(c, err)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
