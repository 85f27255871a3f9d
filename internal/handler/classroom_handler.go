package handler

import (
	"net/http"

	"endowal/internal/authz"
	"endowal/internal/middleware"
	"endowal/internal/models"
	"endowal/internal/repository"

	"github.com/gin-gonic/gin"
)

type ClassroomHandler struct {
	repo     *repository.ClassroomRepository
	resolver *authz.Resolver
}

func NewClassroomHandler(repo *repository.ClassroomRepository, resolver *authz.Resolver) *ClassroomHandler {
	return &ClassroomHandler{repo: repo, resolver: resolver}
}

type classroomCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	SchoolName string `json:"school_name"`
	GradeLevel string `json:"grade_level"`
	TeacherID  uint   `json:"teacher_id"`
}

type classroomUpdateRequest struct {
	Name       *string `json:"name"`
	SchoolName *string `json:"school_name"`
	GradeLevel *string `json:"grade_level"`
	TeacherID  *uint   `json:"teacher_id"`
}

// List returns classrooms. A teacher's list is scoped to their own classrooms;
// students and admins see all (direct reads are not classroom-scoped).
func (h *ClassroomHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	skip, limit := listParams(c)
	f := repository.ClassroomFilter{Skip: skip, Limit: limit}
	teacherID, ok := uintQuery(c, "teacher_id")
	if !ok {
		return
	}
	f.TeacherID = teacherID
	if actor.IsTeacher() {
		f.TeacherID = &actor.ID
	}
	classrooms, err := h.repo.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, classrooms)
}

// Create is teacher/admin (route gate). A teacher always becomes the owner
// regardless of the supplied teacher_id.
func (h *ClassroomHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	var req classroomCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	teacherID := req.TeacherID
	if actor.IsTeacher() {
		teacherID = actor.ID
	}
	if teacherID == 0 {
		badRequest(c, "teacher_id is required")
		return
	}
	classroom := &models.Classroom{
		TeacherID:  teacherID,
		Name:       req.Name,
		SchoolName: req.SchoolName,
		GradeLevel: req.GradeLevel,
	}
	if err := h.repo.Create(classroom); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, classroom)
}

func (h *ClassroomHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	classroom, err := h.resolver.Classroom(actor, id, authz.Read)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, classroom)
}

func (h *ClassroomHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Classroom(actor, id, authz.Write); err != nil {
		fail(c, err)
		return
	}
	var req classroomUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.SchoolName != nil {
		fields["school_name"] = *req.SchoolName
	}
	if req.GradeLevel != nil {
		fields["grade_level"] = *req.GradeLevel
	}
	if req.TeacherID != nil {
		fields["teacher_id"] = *req.TeacherID
	}
	classroom, err := h.repo.Updates(id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, classroom)
}

func (h *ClassroomHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Classroom(actor, id, authz.Write); err != nil {
		fail(c, err)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
