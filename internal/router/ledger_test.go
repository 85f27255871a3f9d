package router

import (
	"fmt"
	"net/http"
	"testing"

	"endowal/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getBalance(t *testing.T, world *testWorld, token string, walletID uint) int64 {
	t.Helper()
	w := doJSON(t, world.r, http.MethodGet, walletPath(walletID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var wallet models.StudentWallet
	decode(t, w, &wallet)
	return wallet.BalanceCents
}

func TestLedgerEntryLifecycle(t *testing.T) {
	world := newTestWorld(t)
	wallet := world.wallet(t, world.classroom1.ID, world.student1.ID, 0)
	teacher := world.as(t, world.teacher1)

	w := doJSON(t, world.r, http.MethodPost, "/api/v1/ledger-entries", teacher, gin.H{
		"wallet_id": wallet.ID, "amount_cents": 500, "entry_type": "deposit",
		"source": "teacher_grant", "memo": "starting grant",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var deposit models.LedgerEntry
	decode(t, w, &deposit)
	assert.EqualValues(t, 500, getBalance(t, world, teacher, wallet.ID))

	w = doJSON(t, world.r, http.MethodPost, "/api/v1/ledger-entries", teacher, gin.H{
		"wallet_id": wallet.ID, "amount_cents": 200, "entry_type": "withdrawal",
		"source": "student_action",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var withdrawal models.LedgerEntry
	decode(t, w, &withdrawal)
	assert.EqualValues(t, 300, getBalance(t, world, teacher, wallet.ID))

	// Amending the amount re-syncs the balance.
	w = doJSON(t, world.r, http.MethodPatch,
		fmt.Sprintf("/api/v1/ledger-entries/%d", withdrawal.ID), teacher,
		gin.H{"amount_cents": 100})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 400, getBalance(t, world, teacher, wallet.ID))

	// Deleting reverses the effect.
	w = doJSON(t, world.r, http.MethodDelete,
		fmt.Sprintf("/api/v1/ledger-entries/%d", deposit.ID), teacher, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.EqualValues(t, -100, getBalance(t, world, teacher, wallet.ID))
}

func TestLedgerEntryValidation(t *testing.T) {
	world := newTestWorld(t)
	wallet := world.wallet(t, world.classroom1.ID, world.student1.ID, 0)
	teacher := world.as(t, world.teacher1)

	for name, body := range map[string]gin.H{
		"zero amount":     {"wallet_id": wallet.ID, "amount_cents": 0, "entry_type": "deposit", "source": "teacher_grant"},
		"negative amount": {"wallet_id": wallet.ID, "amount_cents": -50, "entry_type": "deposit", "source": "teacher_grant"},
		"bad entry type":  {"wallet_id": wallet.ID, "amount_cents": 100, "entry_type": "transfer", "source": "teacher_grant"},
		"bad source":      {"wallet_id": wallet.ID, "amount_cents": 100, "entry_type": "deposit", "source": "bank"},
	} {
		w := doJSON(t, world.r, http.MethodPost, "/api/v1/ledger-entries", teacher, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}

	// References are checked before the insert.
	w := doJSON(t, world.r, http.MethodPost, "/api/v1/ledger-entries", teacher, gin.H{
		"wallet_id": 9999, "amount_cents": 100, "entry_type": "deposit", "source": "teacher_grant",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, world.r, http.MethodPost, "/api/v1/ledger-entries", teacher, gin.H{
		"wallet_id": wallet.ID, "assignment_id": 9999, "amount_cents": 100,
		"entry_type": "deposit", "source": "teacher_grant",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLedgerEntryAccess(t *testing.T) {
	world := newTestWorld(t)
	wallet := world.wallet(t, world.classroom1.ID, world.student1.ID, 0)
	teacher := world.as(t, world.teacher1)

	w := doJSON(t, world.r, http.MethodPost, "/api/v1/ledger-entries", teacher, gin.H{
		"wallet_id": wallet.ID, "amount_cents": 500, "entry_type": "deposit", "source": "teacher_grant",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.LedgerEntry
	decode(t, w, &entry)
	path := fmt.Sprintf("/api/v1/ledger-entries/%d", entry.ID)

	// Students read their own entries but never write (route gate).
	w = doJSON(t, world.r, http.MethodGet, path, world.as(t, world.student1), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, world.r, http.MethodPost, "/api/v1/ledger-entries", world.as(t, world.student1), gin.H{
		"wallet_id": wallet.ID, "amount_cents": 100, "entry_type": "deposit", "source": "student_action",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Other students and teachers are walled off by the wallet chain.
	w = doJSON(t, world.r, http.MethodGet, path, world.as(t, world.student2), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, world.r, http.MethodPatch, path, world.as(t, world.teacher2), gin.H{"memo": "mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLedgerEntryList(t *testing.T) {
	world := newTestWorld(t)
	wallet1 := world.wallet(t, world.classroom1.ID, world.student1.ID, 0)
	wallet2 := world.wallet(t, world.classroom2.ID, world.student2.ID, 0)
	teacher1 := world.as(t, world.teacher1)
	teacher2 := world.as(t, world.teacher2)

	for token, walletID := range map[string]uint{teacher1: wallet1.ID, teacher2: wallet2.ID} {
		w := doJSON(t, world.r, http.MethodPost, "/api/v1/ledger-entries", token, gin.H{
			"wallet_id": walletID, "amount_cents": 100, "entry_type": "deposit", "source": "teacher_grant",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Teachers see entries of their own classrooms only.
	w := doJSON(t, world.r, http.MethodGet, "/api/v1/ledger-entries", teacher1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.LedgerEntry
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, wallet1.ID, list[0].WalletID)

	// A student's list is scoped to their own wallets.
	w = doJSON(t, world.r, http.MethodGet, "/api/v1/ledger-entries", world.as(t, world.student2), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, wallet2.ID, list[0].WalletID)

	// Filtering by a foreign wallet is refused at the wallet chain.
	w = doJSON(t, world.r, http.MethodGet,
		fmt.Sprintf("/api/v1/ledger-entries?wallet_id=%d", wallet2.ID),
		world.as(t, world.student1), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
