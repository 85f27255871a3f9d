package router

import (
	"fmt"
	"net/http"
	"testing"

	"endowal/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentCreate(t *testing.T) {
	world := newTestWorld(t)

	w := doJSON(t, world.r, http.MethodPost, "/api/v1/assignments", world.as(t, world.teacher1), gin.H{
		"classroom_id":        world.classroom1.ID,
		"title":               "Plan a class party",
		"target_amount_cents": 5000,
		"due_date":            "2026-10-01",
		"status":              "active",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Assignment
	decode(t, w, &created)
	assert.Equal(t, world.teacher1.ID, created.CreatedBy)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2026-10-01", created.DueDate.Format("2006-01-02"))

	// Wrong classroom, wrong teacher.
	w = doJSON(t, world.r, http.MethodPost, "/api/v1/assignments", world.as(t, world.teacher1), gin.H{
		"classroom_id": world.classroom2.ID, "title": "Poaching",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin creating without created_by falls back to the classroom owner.
	w = doJSON(t, world.r, http.MethodPost, "/api/v1/assignments", world.as(t, world.admin), gin.H{
		"classroom_id": world.classroom2.ID, "title": "Admin Made",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	decode(t, w, &created)
	assert.Equal(t, world.teacher2.ID, created.CreatedBy)

	// Bad due date format.
	w = doJSON(t, world.r, http.MethodPost, "/api/v1/assignments", world.as(t, world.teacher1), gin.H{
		"classroom_id": world.classroom1.ID, "title": "X", "due_date": "10/01/2026",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignmentWriteBoundary(t *testing.T) {
	world := newTestWorld(t)
	a := world.assignment(t, world.classroom1.ID, world.teacher1.ID, "Budget a trip")
	path := fmt.Sprintf("/api/v1/assignments/%d", a.ID)

	// Open to read for everyone, including students of other classes.
	w := doJSON(t, world.r, http.MethodGet, path, world.as(t, world.student2), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, world.r, http.MethodPatch, path, world.as(t, world.teacher2), gin.H{"status": "closed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, world.r, http.MethodPatch, path, world.as(t, world.teacher1), gin.H{"status": "closed"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Assignment
	decode(t, w, &updated)
	assert.Equal(t, "closed", updated.Status)

	w = doJSON(t, world.r, http.MethodDelete, path, world.as(t, world.teacher2), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, world.r, http.MethodDelete, path, world.as(t, world.teacher1), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, world.r, http.MethodDelete, path, world.as(t, world.teacher1), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignmentListFilters(t *testing.T) {
	world := newTestWorld(t)
	world.assignment(t, world.classroom1.ID, world.teacher1.ID, "One")
	world.assignment(t, world.classroom2.ID, world.teacher2.ID, "Two")

	w := doJSON(t, world.r, http.MethodGet,
		fmt.Sprintf("/api/v1/assignments?classroom_id=%d", world.classroom1.ID),
		world.as(t, world.student1), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Assignment
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "One", list[0].Title)

	w = doJSON(t, world.r, http.MethodGet, "/api/v1/assignments?classroom_id=abc", world.as(t, world.student1), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
