package repository

import (
	"endowal/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type UserFilter struct {
	Role  string
	Email string
	Skip  int
	Limit int
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(f UserFilter) ([]models.User, error) {
	q := r.db.Model(&models.User{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	var users []models.User
	if err := paginate(q, f.Skip, f.Limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Updates applies a sparse patch and returns the fresh record. An empty patch
// is a no-op equivalent to GetByID.
func (r *UserRepository) Updates(id uint, fields map[string]interface{}) (*models.User, error) {
	if len(fields) > 0 {
		res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return r.GetByID(id)
}

func (r *UserRepository) Delete(id uint) error {
	res := r.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
