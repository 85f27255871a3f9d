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

type BucketHandler struct {
	repo     *repository.BucketRepository
	resolver *authz.Resolver
}

func NewBucketHandler(repo *repository.BucketRepository, resolver *authz.Resolver) *BucketHandler {
	return &BucketHandler{repo: repo, resolver: resolver}
}

type bucketCreateRequest struct {
	WalletID uint   `json:"wallet_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	// Bucket targets are advisory; the sum across a wallet is not capped.
	PercentTarget float64 `json:"percent_target" binding:"omitempty,gte=0"`
}

type bucketUpdateRequest struct {
	Name          *string  `json:"name"`
	PercentTarget *float64 `json:"percent_target" binding:"omitempty,gte=0"`
}

func (h *BucketHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	skip, limit := listParams(c)
	f := repository.BucketFilter{Skip: skip, Limit: limit}
	walletID, ok := uintQuery(c, "wallet_id")
	if !ok {
		return
	}
	if walletID != nil {
		if _, err := h.resolver.Wallet(actor, *walletID); err != nil {
			fail(c, err)
			return
		}
		f.WalletID = walletID
	} else {
		switch {
		case actor.IsStudent():
			f.StudentID = &actor.ID
		case actor.IsTeacher():
			f.OwnerTeacherID = &actor.ID
		}
	}
	buckets, err := h.repo.List(f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (h *BucketHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	var req bucketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := h.resolver.Wallet(actor, req.WalletID); err != nil {
		fail(c, err)
		return
	}
	bucket := &models.WalletBucket{
		WalletID:      req.WalletID,
		Name:          req.Name,
		PercentTarget: req.PercentTarget,
	}
	if err := h.repo.Create(bucket); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			conflict(c, "bucket name already used in this wallet")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, bucket)
}

func (h *BucketHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	bucket, err := h.resolver.Bucket(actor, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bucket)
}

func (h *BucketHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Bucket(actor, id); err != nil {
		fail(c, err)
		return
	}
	var req bucketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.PercentTarget != nil {
		fields["percent_target"] = *req.PercentTarget
	}
	bucket, err := h.repo.Updates(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			conflict(c, "bucket name already used in this wallet")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bucket)
}

func (h *BucketHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)
	if _, err := h.resolver.Bucket(actor, id); err != nil {
		fail(c, err)
		return
	}
	if err := h.repo.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
