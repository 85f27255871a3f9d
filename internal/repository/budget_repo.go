package repository

import (
	"endowal/internal/models"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

type SubmissionFilter struct {
	AssignmentID *uint
	StudentID    *uint
	// OwnerTeacherID scopes the list to submissions against assignments the
	// teacher created.
	OwnerTeacherID *uint
	Skip           int
	Limit          int
}

func (r *SubmissionRepository) Create(s *models.BudgetSubmission) error {
	return r.db.Create(s).Error
}

func (r *SubmissionRepository) GetByID(id uint) (*models.BudgetSubmission, error) {
	var s models.BudgetSubmission
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) List(f SubmissionFilter) ([]models.BudgetSubmission, error) {
	q := r.db.Model(&models.BudgetSubmission{})
	if f.OwnerTeacherID != nil {
		q = q.Joins("JOIN assignments ON assignments.id = budget_submissions.assignment_id").
			Where("assignments.created_by = ?", *f.OwnerTeacherID)
	}
	if f.AssignmentID != nil {
		q = q.Where("budget_submissions.assignment_id = ?", *f.AssignmentID)
	}
	if f.StudentID != nil {
		q = q.Where("budget_submissions.student_id = ?", *f.StudentID)
	}
	var submissions []models.BudgetSubmission
	if err := paginate(q, f.Skip, f.Limit).Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *SubmissionRepository) Updates(id uint, fields map[string]interface{}) (*models.BudgetSubmission, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&models.BudgetSubmission{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

func (r *SubmissionRepository) Delete(id uint) error {
	res := r.db.Delete(&models.BudgetSubmission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type LineItemRepository struct {
	db *gorm.DB
}

func NewLineItemRepository(db *gorm.DB) *LineItemRepository {
	return &LineItemRepository{db: db}
}

type LineItemFilter struct {
	SubmissionID *uint
	Skip         int
	Limit        int
}

func (r *LineItemRepository) Create(item *models.BudgetLineItem) error {
	return r.db.Create(item).Error
}

func (r *LineItemRepository) GetByID(id uint) (*models.BudgetLineItem, error) {
	var item models.BudgetLineItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *LineItemRepository) List(f LineItemFilter) ([]models.BudgetLineItem, error) {
	q := r.db.Model(&models.BudgetLineItem{})
	if f.SubmissionID != nil {
		q = q.Where("submission_id = ?", *f.SubmissionID)
	}
	var items []models.BudgetLineItem
	if err := paginate(q, f.Skip, f.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *LineItemRepository) Updates(id uint, fields map[string]interface{}) (*models.BudgetLineItem, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&models.BudgetLineItem{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(id)
}

func (r *LineItemRepository) Delete(id uint) error {
	res := r.db.Delete(&models.BudgetLineItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
