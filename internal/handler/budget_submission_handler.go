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

type SubmissionHandler struct {
	repo     *repository.SubmissionRepository
	resolver *authz.Resolver
}

func NewSubmissionHandler(repo *repository.SubmissionRepository, resolver *authz.Resolver) *SubmissionHandler {
	return &SubmissionHandler{repo: repo, resolver: resolver}
}

type submissionCreateRequest struct {
	AssignmentID      uint   `json:"assignment_id" binding:"required"`
	StudentID         uint   `json:"student_id"`
	TotalPlannedCents int64  `json:"total_planned_cents" binding:"omitempty,gte=0"`
	Notes             string `json:"notes"`
	Status            string `json:"status" binding:"omitempty,oneof=submitted approved revise"`
}

type submissionUpdateRequest struct {
	TotalPlannedCents *int64  `json:"total_planned_cents" binding:"omitempty,gte=0"`
	Notes             *string `json:"notes"`
	Status            *string `json:"status" binding:"omitempty,oneof=submitted approved revise"`
}

func (h *SubmissionHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	skip, limit := listParams(c)
	f := repository.SubmissionFilter{Skip: skip, Limit: limit}
	assignmentID, ok := uintQuery(c, "assignment_id")
	if !ok {
		return
	}
	studentID, ok := uintQuery(c, "student_id")
	if !ok {
		return
	}
	f.AssignmentID = assignmentID
	f.StudentID = studentID
	switch {
	case actor.IsStudent():
		if studentID != nil && *studentID != actor.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
			return
		}
		f.StudentID = &actor.ID
	case actor.IsTeacher():
		if assignmentID != nil {
			if _, err := h.resolver.AssignmentOwner(actor, *assignmentID); err != nil {
				fail(c, err)
				return
			}
		} else {
			f.OwnerTeacherID = &actor.ID
		}
	}
	submissions, err := h.repo.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// Create: a student always submits as themselves; a teacher may only record
// submissions against assignments they created.
func (h *SubmissionHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	var req submissionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := h.resolver.AssignmentOwner(actor, req.AssignmentID); err != nil {
		fail(c, err)
		return
	}
	studentID := req.StudentID
	if actor.IsStudent() {
		studentID = actor.ID
	}
	if studentID == 0 {
		badRequest(c, "student_id is required")
		return
	}
	submission := &models.BudgetSubmission{
		AssignmentID:      req.AssignmentID,
		StudentID:         studentID,
		TotalPlannedCents: req.TotalPlannedCents,
		Notes:             req.Notes,
		Status:            req.Status,
	}
	if err := h.repo.Create(submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			conflict(c, "student already submitted a budget for this assignment")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (h *SubmissionHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	submission, err := h.resolver.Submission(actor, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *SubmissionHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Submission(actor, id); err != nil {
		fail(c, err)
		return
	}
	var req submissionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.TotalPlannedCents != nil {
		fields["total_planned_cents"] = *req.TotalPlannedCents
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	submission, err := h.repo.Updates(id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *SubmissionHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Submission(actor, id); err != nil {
		fail(c, err)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
