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

func userPath(id uint) string {
	return fmt.Sprintf("/api/v1/users/%d", id)
}

func TestUserAdminGates(t *testing.T) {
	world := newTestWorld(t)

	for _, u := range []models.User{world.teacher1, world.student1} {
		w := doJSON(t, world.r, http.MethodGet, "/api/v1/users", world.as(t, u), nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "list as %s", u.Role)
		w = doJSON(t, world.r, http.MethodDelete, userPath(world.student2.ID), world.as(t, u), nil)
		assert.Equal(t, http.StatusForbidden, w.Code, "delete as %s", u.Role)
	}

	w := doJSON(t, world.r, http.MethodGet, "/api/v1/users?role=student", world.as(t, world.admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.User
	decode(t, w, &list)
	assert.Len(t, list, 2)
}

func TestUserAdminCreate(t *testing.T) {
	world := newTestWorld(t)
	admin := world.as(t, world.admin)

	w := doJSON(t, world.r, http.MethodPost, "/api/v1/users", admin, gin.H{
		"email": "second-admin@example.com", "password": "supersecret", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.User
	decode(t, w, &created)
	assert.Equal(t, "admin", created.Role)

	w = doJSON(t, world.r, http.MethodPost, "/api/v1/users", admin, gin.H{
		"email": world.student1.Email, "password": "supersecret", "role": "student",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, world.r, http.MethodPost, "/api/v1/users", admin, gin.H{
		"email": "x@example.com", "password": "supersecret", "role": "principal",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserSelfAccess(t *testing.T) {
	world := newTestWorld(t)
	me := world.as(t, world.student1)

	w := doJSON(t, world.r, http.MethodGet, userPath(world.student1.ID), me, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, world.r, http.MethodGet, userPath(world.student2.ID), me, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, world.r, http.MethodPatch, userPath(world.student1.ID), me, gin.H{"name": "New Name"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.User
	decode(t, w, &updated)
	assert.Equal(t, "New Name", updated.Name)

	// Only admins reassign roles.
	w = doJSON(t, world.r, http.MethodPatch, userPath(world.student1.ID), me, gin.H{"role": "teacher"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, world.r, http.MethodPatch, userPath(world.student1.ID), world.as(t, world.admin), gin.H{"role": "teacher"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &updated)
	assert.Equal(t, "teacher", updated.Role)
}

func TestUserDelete(t *testing.T) {
	world := newTestWorld(t)
	admin := world.as(t, world.admin)

	w := doJSON(t, world.r, http.MethodDelete, userPath(world.student2.ID), admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, world.r, http.MethodDelete, userPath(world.student2.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
