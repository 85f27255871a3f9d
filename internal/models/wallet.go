package models

import "time"

// StudentWallet holds a student's running balance inside one classroom.
// The balance is denormalized; ledger entry writes adjust it in the same
// transaction (see repository.LedgerRepository).
type StudentWallet struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ClassroomID  uint      `gorm:"not null;index;uniqueIndex:uq_wallet_class_student" json:"classroom_id"`
	StudentID    uint      `gorm:"not null;index;uniqueIndex:uq_wallet_class_student" json:"student_id"`
	BalanceCents int64     `gorm:"not null;default:0" json:"balance_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Classroom Classroom `gorm:"foreignKey:ClassroomID" json:"-"`
	Student   User      `gorm:"foreignKey:StudentID" json:"-"`
}

func (StudentWallet) TableName() string {
	return "student_wallets"
}

// WalletBucket is a named sub-allocation of a wallet's spending plan
// (e.g. Needs/Wants/Goals). Not a monetary account of its own.
type WalletBucket struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WalletID      uint      `gorm:"not null;index;uniqueIndex:uq_bucket_wallet_name" json:"wallet_id"`
	Name          string    `gorm:"size:80;not null;uniqueIndex:uq_bucket_wallet_name" json:"name"`
	PercentTarget float64   `gorm:"default:0" json:"percent_target"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Wallet StudentWallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (WalletBucket) TableName() string {
	return "wallet_buckets"
}
