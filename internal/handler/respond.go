package handler

import (
	"errors"
	"net/http"
	"strconv"

	"endowal/internal/authz"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// fail maps resolver and store errors to the response taxonomy. Handlers call
// it for every error they do not map explicitly (e.g. named conflicts).
func fail(c *gin.Context, err error) {
	var nf *authz.NotFoundError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.Is(err, authz.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate value violates a uniqueness constraint"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// listParams reads skip/limit pagination with the collection defaults.
func listParams(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	return skip, limit
}

// uintQuery parses an optional equality filter. ok is false when the value is
// present but malformed (the caller responds 400).
func uintQuery(c *gin.Context, key string) (val *uint, ok bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		badRequest(c, "invalid "+key)
		return nil, false
	}
	v := uint(n)
	return &v, true
}
