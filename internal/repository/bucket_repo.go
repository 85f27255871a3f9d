package repository

import (
	"endowal/internal/models"

	"gorm.io/gorm"
)

type BucketRepository struct {
	db *gorm.DB
}

func NewBucketRepository(db *gorm.DB) *BucketRepository {
	return &BucketRepository{db: db}
}

type BucketFilter struct {
	WalletID *uint
	// StudentID scopes the list to buckets of wallets owned by a student.
	StudentID *uint
	// OwnerTeacherID scopes the list through wallet -> classroom -> teacher.
	OwnerTeacherID *uint
	Skip           int
	Limit          int
}

func (r *BucketRepository) Create(b *models.WalletBucket) error {
	return r.db.Create(b).Error
}

func (r *BucketRepository) GetByID(id uint) (*models.WalletBucket, error) {
	var b models.WalletBucket
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BucketRepository) List(f BucketFilter) ([]models.WalletBucket, error) {
	q := r.db.Model(&models.WalletBucket{})
	if f.StudentID != nil || f.OwnerTeacherID != nil {
		q = q.Joins("JOIN student_wallets ON student_wallets.id = wallet_buckets.wallet_id")
	}
	if f.StudentID != nil {
		q = q.Where("student_wallets.student_id = ?", *f.StudentID)
	}
	if f.OwnerTeacherID != nil {
		q = q.Joins("JOIN classrooms ON classrooms.id = student_wallets.classroom_id").
			Where("classrooms.teacher_id = ?", *f.OwnerTeacherID)
	}
	if f.WalletID != nil {
		q = q.Where("wallet_buckets.wallet_id = ?", *f.WalletID)
	}
	var buckets []models.WalletBucket
	if err := paginate(q, f.Skip, f.Limit).Find(&buckets).Error; err != nil {
		return nil, err
	}
	return buckets, nil
}

func (r *BucketRepository) Updates(id uint, fields map[string]interface{}) (*models.WalletBucket, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&models.WalletBucket{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

func (r *BucketRepository) Delete(id uint) error {
	res := r.db.Delete(&models.WalletBucket{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
