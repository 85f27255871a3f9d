package repository

import (
	"endowal/internal/models"

	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

type WalletFilter struct {
	ClassroomID *uint
	StudentID   *uint
	// OwnerTeacherID scopes the list to wallets whose classroom the teacher owns.
	OwnerTeacherID *uint
	Skip           int
	Limit          int
}

func (r *WalletRepository) Create(w *models.StudentWallet) error {
	return r.db.Create(w).Error
}

func (r *WalletRepository) GetByID(id uint) (*models.StudentWallet, error) {
	var w models.StudentWallet
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) List(f WalletFilter) ([]models.StudentWallet, error) {
	q := r.db.Model(&models.StudentWallet{})
	if f.OwnerTeacherID != nil {
		q = q.Joins("JOIN classrooms ON classrooms.id = student_wallets.classroom_id").
			Where("classrooms.teacher_id = ?", *f.OwnerTeacherID)
	}
	if f.ClassroomID != nil {
		q = q.Where("student_wallets.classroom_id = ?", *f.ClassroomID)
	}
	if f.StudentID != nil {
		q = q.Where("student_wallets.student_id = ?", *f.StudentID)
	}
	var wallets []models.StudentWallet
	if err := paginate(q, f.Skip, f.Limit).Find(&wallets).Error; err != nil {
		return nil, err
	}
	return wallets, nil
}

func (r *WalletRepository) Updates(id uint, fields map[string]interface{}) (*models.StudentWallet, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&models.StudentWallet{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

func (r *WalletRepository) Delete(id uint) error {
	res := r.db.Delete(&models.StudentWallet{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
