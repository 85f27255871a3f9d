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

type EnrollmentHandler struct {
	repo     *repository.EnrollmentRepository
	resolver *authz.Resolver
}

func NewEnrollmentHandler(repo *repository.EnrollmentRepository, resolver *authz.Resolver) *EnrollmentHandler {
	return &EnrollmentHandler{repo: repo, resolver: resolver}
}

type enrollmentCreateRequest struct {
	ClassroomID uint   `json:"classroom_id" binding:"required"`
	StudentID   uint   `json:"student_id" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=active archived"`
}

type enrollmentUpdateRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=active archived"`
}

func (h *EnrollmentHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	skip, limit := listParams(c)
	f := repository.EnrollmentFilter{Status: c.Query("status"), Skip: skip, Limit: limit}
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
	enrollments, err := h.repo.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

// Create is teacher/admin (route gate); teachers may only enroll students into
// their own classrooms.
func (h *EnrollmentHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	var req enrollmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := h.resolver.ClassroomOwner(actor, req.ClassroomID); err != nil {
		fail(c, err)
		return
	}
	enrollment := &models.Enrollment{
		ClassroomID: req.ClassroomID,
		StudentID:   req.StudentID,
		Status:      req.Status,
	}
	if err := h.repo.Create(enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			conflict(c, "student is already enrolled in this classroom")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	enrollment, err := h.resolver.Enrollment(actor, id, authz.Read)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Enrollment(actor, id, authz.Write); err != nil {
		fail(c, err)
		return
	}
	var req enrollmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	enrollment, err := h.repo.Updates(id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Enrollment(actor, id, authz.Write); err != nil {
		fail(c, err)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
