package models

import "time"

// LedgerEntry records a deposit or withdrawal against a wallet.
type LedgerEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	WalletID     uint      `gorm:"not null;index" json:"wallet_id"`
	AssignmentID *uint     `gorm:"index" json:"assignment_id"`
	AmountCents  int64     `gorm:"not null" json:"amount_cents"`
	EntryType    string    `gorm:"size:20;not null" json:"entry_type"` // deposit | withdrawal
	Source       string    `gorm:"size:30;not null" json:"source"`     // teacher_grant | student_action
	Memo         string    `gorm:"size:255" json:"memo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Wallet StudentWallet `gorm:"foreignKey:WalletID" json:"-"`
}

// BalanceEffect is the entry's signed contribution to the wallet balance.
func (e *LedgerEntry) BalanceEffect() int64 {
	if e.EntryType == "withdrawal" {
		return -e.AmountCents
	}
	return e.AmountCents
}
