package repository

import (
	"endowal/internal/models"

	"gorm.io/gorm"
)

// LedgerRepository keeps the denormalized wallet balance consistent with the
// entry history: every create/update/delete applies its balance effect to the
// owning wallet in the same transaction, as an atomic increment.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

type LedgerFilter struct {
	WalletID     *uint
	AssignmentID *uint
	// StudentID scopes the list to entries of wallets owned by a student.
	StudentID *uint
	// OwnerTeacherID scopes the list through wallet -> classroom -> teacher.
	OwnerTeacherID *uint
	Skip           int
	Limit          int
}

func applyBalance(tx *gorm.DB, walletID uint, delta int64) error {
	if delta == 0 {
		return nil
	}
	res := tx.Model(&models.StudentWallet{}).Where("id = ?", walletID).
		UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LedgerRepository) Create(e *models.LedgerEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return applyBalance(tx, e.WalletID, e.BalanceEffect())
	})
}

func (r *LedgerRepository) GetByID(id uint) (*models.LedgerEntry, error) {
	var e models.LedgerEntry
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *LedgerRepository) List(f LedgerFilter) ([]models.LedgerEntry, error) {
	q := r.db.Model(&models.LedgerEntry{})
	if f.StudentID != nil || f.OwnerTeacherID != nil {
		q = q.Joins("JOIN student_wallets ON student_wallets.id = ledger_entries.wallet_id")
	}
	if f.StudentID != nil {
		q = q.Where("student_wallets.student_id = ?", *f.StudentID)
	}
	if f.OwnerTeacherID != nil {
		q = q.Joins("JOIN classrooms ON classrooms.id = student_wallets.classroom_id").
			Where("classrooms.teacher_id = ?", *f.OwnerTeacherID)
	}
	if f.WalletID != nil {
		q = q.Where("ledger_entries.wallet_id = ?", *f.WalletID)
	}
	if f.AssignmentID != nil {
		q = q.Where("ledger_entries.assignment_id = ?", *f.AssignmentID)
	}
	var entries []models.LedgerEntry
	if err := paginate(q, f.Skip, f.Limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Updates patches an entry and re-syncs the wallet balance with the difference
// between the old and new balance effect. The wallet reference itself is not
// patchable.
func (r *LedgerRepository) Updates(id uint, fields map[string]interface{}) (*models.LedgerEntry, error) {
	var updated models.LedgerEntry
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var before models.LedgerEntry
		if err := tx.First(&before, id).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			updated = before
			return nil
		}
		if err := tx.Model(&models.LedgerEntry{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}
		return applyBalance(tx, before.WalletID, updated.BalanceEffect()-before.BalanceEffect())
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *LedgerRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var e models.LedgerEntry
		if err := tx.First(&e, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.LedgerEntry{}, id).Error; err != nil {
			return err
		}
		return applyBalance(tx, e.WalletID, -e.BalanceEffect())
	})
}
