package repository

import (
	"endowal/internal/models"

	"gorm.io/gorm"
)

type ClassroomRepository struct {
	db *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

type ClassroomFilter struct {
	TeacherID *uint
	Skip      int
	Limit     int
}

func (r *ClassroomRepository) Create(c *models.Classroom) error {
	return r.db.Create(c).Error
}

func (r *ClassroomRepository) GetByID(id uint) (*models.Classroom, error) {
	var c models.Classroom
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassroomRepository) List(f ClassroomFilter) ([]models.Classroom, error) {
	q := r.db.Model(&models.Classroom{})
	if f.TeacherID != nil {
		q = q.Where("teacher_id = ?", *f.TeacherID)
	}
	var classrooms []models.Classroom
	if err := paginate(q, f.Skip, f.Limit).Find(&classrooms).Error; err != nil {
		return nil, err
	}
	return classrooms, nil
}

func (r *ClassroomRepository) Updates(id uint, fields map[string]interface{}) (*models.Classroom, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&models.Classroom{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

func (r *ClassroomRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Classroom{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
