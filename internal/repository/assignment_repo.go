package repository

import (
	"endowal/internal/models"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

type AssignmentFilter struct {
	ClassroomID *uint
	CreatedBy   *uint
	Status      string
	Skip        int
	Limit       int
}

func (r *AssignmentRepository) Create(a *models.Assignment) error {
	return r.db.Create(a).Error
}

func (r *AssignmentRepository) GetByID(id uint) (*models.Assignment, error) {
	var a models.Assignment
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) List(f AssignmentFilter) ([]models.Assignment, error) {
	q := r.db.Model(&models.Assignment{})
	if f.ClassroomID != nil {
		q = q.Where("classroom_id = ?", *f.ClassroomID)
	}
	if f.CreatedBy != nil {
		q = q.Where("created_by = ?", *f.CreatedBy)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var assignments []models.Assignment
	if err := paginate(q, f.Skip, f.Limit).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *AssignmentRepository) Updates(id uint, fields map[string]interface{}) (*models.Assignment, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&models.Assignment{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

func (r *AssignmentRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Assignment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
