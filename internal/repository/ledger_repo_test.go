package repository

import (
	"testing"

	"endowal/internal/database"
	"endowal/internal/domain"
	"endowal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLedgerFixture(t *testing.T) (*LedgerRepository, *gorm.DB, models.StudentWallet) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	classroom := models.Classroom{TeacherID: 1, Name: "Period 1"}
	require.NoError(t, db.Create(&classroom).Error)
	wallet := models.StudentWallet{ClassroomID: classroom.ID, StudentID: 2}
	require.NoError(t, db.Create(&wallet).Error)

	return NewLedgerRepository(db), db, wallet
}

func balance(t *testing.T, db *gorm.DB, walletID uint) int64 {
	t.Helper()
	var w models.StudentWallet
	require.NoError(t, db.First(&w, walletID).Error)
	return w.BalanceCents
}

func TestLedgerCreateAdjustsBalance(t *testing.T) {
	repo, db, wallet := newLedgerFixture(t)

	deposit := models.LedgerEntry{WalletID: wallet.ID, AmountCents: 500, EntryType: domain.EntryDeposit, Source: domain.SourceTeacherGrant}
	require.NoError(t, repo.Create(&deposit))
	assert.EqualValues(t, 500, balance(t, db, wallet.ID))

	withdrawal := models.LedgerEntry{WalletID: wallet.ID, AmountCents: 200, EntryType: domain.EntryWithdrawal, Source: domain.SourceStudentAction}
	require.NoError(t, repo.Create(&withdrawal))
	assert.EqualValues(t, 300, balance(t, db, wallet.ID))
}

func TestLedgerCreateMissingWalletRollsBack(t *testing.T) {
	repo, db, _ := newLedgerFixture(t)

	entry := models.LedgerEntry{WalletID: 9999, AmountCents: 100, EntryType: domain.EntryDeposit, Source: domain.SourceTeacherGrant}
	err := repo.Create(&entry)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The insert must not survive the failed balance adjustment.
	var count int64
	require.NoError(t, db.Model(&models.LedgerEntry{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestLedgerUpdateRebalances(t *testing.T) {
	repo, db, wallet := newLedgerFixture(t)

	entry := models.LedgerEntry{WalletID: wallet.ID, AmountCents: 500, EntryType: domain.EntryDeposit, Source: domain.SourceTeacherGrant}
	require.NoError(t, repo.Create(&entry))

	updated, err := repo.Updates(entry.ID, map[string]interface{}{"amount_cents": int64(800)})
	require.NoError(t, err)
	assert.EqualValues(t, 800, updated.AmountCents)
	assert.EqualValues(t, 800, balance(t, db, wallet.ID))

	// Flipping the type reverses the effect.
	updated, err = repo.Updates(entry.ID, map[string]interface{}{"entry_type": domain.EntryWithdrawal})
	require.NoError(t, err)
	assert.Equal(t, domain.EntryWithdrawal, updated.EntryType)
	assert.EqualValues(t, -800, balance(t, db, wallet.ID))
}

func TestLedgerUpdateEmptyPatchIsNoOp(t *testing.T) {
	repo, db, wallet := newLedgerFixture(t)

	entry := models.LedgerEntry{WalletID: wallet.ID, AmountCents: 500, EntryType: domain.EntryDeposit, Source: domain.SourceTeacherGrant}
	require.NoError(t, repo.Create(&entry))

	updated, err := repo.Updates(entry.ID, map[string]interface{}{})
	require.NoError(t, err)
	assert.EqualValues(t, 500, updated.AmountCents)
	assert.EqualValues(t, 500, balance(t, db, wallet.ID))
}

func TestLedgerDeleteReversesEffect(t *testing.T) {
	repo, db, wallet := newLedgerFixture(t)

	deposit := models.LedgerEntry{WalletID: wallet.ID, AmountCents: 500, EntryType: domain.EntryDeposit, Source: domain.SourceTeacherGrant}
	require.NoError(t, repo.Create(&deposit))
	withdrawal := models.LedgerEntry{WalletID: wallet.ID, AmountCents: 200, EntryType: domain.EntryWithdrawal, Source: domain.SourceStudentAction}
	require.NoError(t, repo.Create(&withdrawal))

	require.NoError(t, repo.Delete(withdrawal.ID))
	assert.EqualValues(t, 500, balance(t, db, wallet.ID))
	require.NoError(t, repo.Delete(deposit.ID))
	assert.EqualValues(t, 0, balance(t, db, wallet.ID))

	assert.ErrorIs(t, repo.Delete(deposit.ID), gorm.ErrRecordNotFound)
}

func TestLedgerListScopes(t *testing.T) {
	repo, db, wallet := newLedgerFixture(t)

	// Second wallet under a different teacher's classroom.
	other := models.Classroom{TeacherID: 7, Name: "Period 2"}
	require.NoError(t, db.Create(&other).Error)
	otherWallet := models.StudentWallet{ClassroomID: other.ID, StudentID: 8}
	require.NoError(t, db.Create(&otherWallet).Error)

	require.NoError(t, repo.Create(&models.LedgerEntry{WalletID: wallet.ID, AmountCents: 100, EntryType: domain.EntryDeposit, Source: domain.SourceTeacherGrant}))
	require.NoError(t, repo.Create(&models.LedgerEntry{WalletID: otherWallet.ID, AmountCents: 200, EntryType: domain.EntryDeposit, Source: domain.SourceTeacherGrant}))

	studentID := uint(2)
	entries, err := repo.List(LedgerFilter{StudentID: &studentID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, wallet.ID, entries[0].WalletID)

	teacherID := uint(7)
	entries, err = repo.List(LedgerFilter{OwnerTeacherID: &teacherID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, otherWallet.ID, entries[0].WalletID)
}
