package handler

import (
	"net/http"
	"time"

	"endowal/internal/authz"
	"endowal/internal/middleware"
	"endowal/internal/models"
	"endowal/internal/repository"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	repo     *repository.AssignmentRepository
	resolver *authz.Resolver
}

func NewAssignmentHandler(repo *repository.AssignmentRepository, resolver *authz.Resolver) *AssignmentHandler {
	return &AssignmentHandler{repo: repo, resolver: resolver}
}

type assignmentCreateRequest struct {
	ClassroomID       uint   `json:"classroom_id" binding:"required"`
	CreatedBy         uint   `json:"created_by"`
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	TargetAmountCents int64  `json:"target_amount_cents" binding:"omitempty,gte=0"`
	DueDate           string `json:"due_date"` // YYYY-MM-DD
	Status            string `json:"status" binding:"omitempty,oneof=draft active closed"`
}

type assignmentUpdateRequest struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Category          *string `json:"category"`
	TargetAmountCents *int64  `json:"target_amount_cents" binding:"omitempty,gte=0"`
	DueDate           *string `json:"due_date"`
	Status            *string `json:"status" binding:"omitempty,oneof=draft active closed"`
}

func parseDueDate(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

// List is unscoped beyond filters; assignment reads are open to any
// authenticated user.
func (h *AssignmentHandler) List(c *gin.Context) {
	skip, limit := listParams(c)
	f := repository.AssignmentFilter{Status: c.Query("status"), Skip: skip, Limit: limit}
	classroomID, ok := uintQuery(c, "classroom_id")
	if !ok {
		return
	}
	createdBy, ok := uintQuery(c, "created_by")
	if !ok {
		return
	}
	f.ClassroomID = classroomID
	f.CreatedBy = createdBy
	assignments, err := h.repo.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// Create is teacher/admin (route gate). A teacher must own the target
// classroom and always becomes the creator.
func (h *AssignmentHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	var req assignmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	classroom, err := h.resolver.ClassroomOwner(actor, req.ClassroomID)
	if err != nil {
		fail(c, err)
		return
	}
	createdBy := req.CreatedBy
	if actor.IsTeacher() {
		createdBy = actor.ID
	}
	if createdBy == 0 {
		createdBy = classroom.TeacherID
	}
	dueDate, ok := parseDueDate(req.DueDate)
	if !ok {
		badRequest(c, "invalid due_date format (use YYYY-MM-DD)")
		return
	}
	assignment := &models.Assignment{
		ClassroomID:       req.ClassroomID,
		CreatedBy:         createdBy,
		Title:             req.Title,
		Description:       req.Description,
		Category:          req.Category,
		TargetAmountCents: req.TargetAmountCents,
		DueDate:           dueDate,
		Status:            req.Status,
	}
	if err := h.repo.Create(assignment); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	assignment, err := h.resolver.Assignment(actor, id, authz.Read)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Assignment(actor, id, authz.Write); err != nil {
		fail(c, err)
		return
	}
	var req assignmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.TargetAmountCents != nil {
		fields["target_amount_cents"] = *req.TargetAmountCents
	}
	if req.DueDate != nil {
		dueDate, ok := parseDueDate(*req.DueDate)
		if !ok {
			badRequest(c, "invalid due_date format (use YYYY-MM-DD)")
			return
		}
		fields["due_date"] = dueDate
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	assignment, err := h.repo.Updates(id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Assignment(actor, id, authz.Write); err != nil {
		fail(c, err)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
