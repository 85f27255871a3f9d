package database

import (
	"log"
	"time"

	"endowal/internal/domain"
	"endowal/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: hash password: %v", err)
	}
	return string(hash)
}

func seedUser(db *gorm.DB, email, name, role, password string) models.User {
	var u models.User
	db.Where(models.User{Email: email}).
		Attrs(models.User{Name: name, Role: role, IsActive: true, PasswordHash: mustHash(password)}).
		FirstOrCreate(&u)
	return u
}

// SeedDemo loads a small demo dataset: one admin, one teacher, three enrolled
// students with wallets, an assignment with grants and one reviewed budget.
// Idempotent; re-running finds the existing rows by their natural keys.
func SeedDemo(db *gorm.DB) {
	admin := seedUser(db, "admin@endowal.app", "Admin User", domain.RoleAdmin, "Admin123!")
	teacher := seedUser(db, "teacher@endowal.app", "Ms. Rivera", domain.RoleTeacher, "Teacher123!")
	students := []models.User{
		seedUser(db, "student1@endowal.app", "Jordan Lee", domain.RoleStudent, "Student123!"),
		seedUser(db, "student2@endowal.app", "Avery Patel", domain.RoleStudent, "Student123!"),
		seedUser(db, "student3@endowal.app", "Kai Brooks", domain.RoleStudent, "Student123!"),
	}
	_ = admin

	var classroom models.Classroom
	db.Where(models.Classroom{TeacherID: teacher.ID, Name: "Budgeting Basics"}).
		Attrs(models.Classroom{SchoolName: "Riverside Middle", GradeLevel: "7"}).
		FirstOrCreate(&classroom)

	dueDate := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	var assignment models.Assignment
	db.Where(models.Assignment{ClassroomID: classroom.ID, Title: "Plan a class party"}).
		Attrs(models.Assignment{
			CreatedBy:         teacher.ID,
			Description:       "Budget the snacks, decorations and games for the end of term party.",
			Category:          "events",
			TargetAmountCents: 5000,
			DueDate:           &dueDate,
			Status:            domain.AssignmentActive,
		}).
		FirstOrCreate(&assignment)

	for _, student := range students {
		var enrollment models.Enrollment
		db.Where(models.Enrollment{ClassroomID: classroom.ID, StudentID: student.ID}).
			Attrs(models.Enrollment{Status: domain.EnrollmentActive}).
			FirstOrCreate(&enrollment)

		var wallet models.StudentWallet
		created := db.Where(models.StudentWallet{ClassroomID: classroom.ID, StudentID: student.ID}).
			Attrs(models.StudentWallet{BalanceCents: 0}).
			FirstOrCreate(&wallet)
		if created.Error != nil {
			continue
		}

		for _, bucket := range []struct {
			name    string
			percent float64
		}{{"Needs", 50}, {"Wants", 30}, {"Goals", 20}} {
			var b models.WalletBucket
			db.Where(models.WalletBucket{WalletID: wallet.ID, Name: bucket.name}).
				Attrs(models.WalletBucket{PercentTarget: bucket.percent}).
				FirstOrCreate(&b)
		}

		var grant models.LedgerEntry
		res := db.Where(models.LedgerEntry{WalletID: wallet.ID, Source: domain.SourceTeacherGrant}).
			Attrs(models.LedgerEntry{
				AssignmentID: &assignment.ID,
				AmountCents:  5000,
				EntryType:    domain.EntryDeposit,
				Memo:         "Starting grant",
			}).
			FirstOrCreate(&grant)
		if res.Error == nil && res.RowsAffected > 0 {
			db.Model(&models.StudentWallet{}).Where("id = ?", wallet.ID).
				UpdateColumn("balance_cents", gorm.Expr("balance_cents + ?", grant.AmountCents))
		}
	}

	var submission models.BudgetSubmission
	res := db.Where(models.BudgetSubmission{AssignmentID: assignment.ID, StudentID: students[0].ID}).
		Attrs(models.BudgetSubmission{
			TotalPlannedCents: 4500,
			Notes:             "Focused on snacks first.",
			Status:            domain.SubmissionSubmitted,
		}).
		FirstOrCreate(&submission)
	if res.Error == nil && res.RowsAffected > 0 {
		db.Create(&models.BudgetLineItem{SubmissionID: submission.ID, Category: "snacks", AmountCents: 3000})
		db.Create(&models.BudgetLineItem{SubmissionID: submission.ID, Category: "decorations", AmountCents: 1500})
	}

	log.Printf("demo data seeded: classroom=%d assignment=%d", classroom.ID, assignment.ID)
}
