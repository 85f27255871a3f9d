package repository

import (
	"endowal/internal/models"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

type EnrollmentFilter struct {
	ClassroomID *uint
	StudentID   *uint
	Status      string
	// OwnerTeacherID scopes the list to classrooms owned by a teacher.
	OwnerTeacherID *uint
	Skip           int
	Limit          int
}

func (r *EnrollmentRepository) Create(e *models.Enrollment) error {
	return r.db.Create(e).Error
}

func (r *EnrollmentRepository) GetByID(id uint) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) List(f EnrollmentFilter) ([]models.Enrollment, error) {
	q := r.db.Model(&models.Enrollment{})
	if f.OwnerTeacherID != nil {
		q = q.Joins("JOIN classrooms ON classrooms.id = enrollments.classroom_id").
			Where("classrooms.teacher_id = ?", *f.OwnerTeacherID)
	}
	if f.ClassroomID != nil {
		q = q.Where("enrollments.classroom_id = ?", *f.ClassroomID)
	}
	if f.StudentID != nil {
		q = q.Where("enrollments.student_id = ?", *f.StudentID)
	}
	if f.Status != "" {
		q = q.Where("enrollments.status = ?", f.Status)
	}
	var enrollments []models.Enrollment
	if err := paginate(q, f.Skip, f.Limit).Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) Updates(id uint, fields map[string]interface{}) (*models.Enrollment, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&models.Enrollment{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

func (r *EnrollmentRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Enrollment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
