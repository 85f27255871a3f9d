package authz

import (
	"errors"

	"endowal/internal/models"

	"gorm.io/gorm"
)

// Access distinguishes scoped reads from mutations for the entity families
// where the two differ (classrooms and assignments are readable by any
// authenticated user but writable only along the ownership chain).
type Access int

const (
	Read Access = iota
	Write
)

var ErrForbidden = errors.New("not authorized")

// NotFoundError reports a missing target or parent reference. It is distinct
// from ErrForbidden: existence is checked before permission, so a missing
// parent is a 404, never a 403.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// Resolver is the single authorization decision point. Every verdict is
// recomputed from the store on each call; decisions are never cached because
// the underlying ownership can change mid-session.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) find(dest interface{}, id uint, resource string) error {
	if err := r.db.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: resource}
		}
		return err
	}
	return nil
}

// Classroom loads a classroom and authorizes the actor against it. Reads are
// open to any authenticated user; writes require the owning teacher.
func (r *Resolver) Classroom(actor Actor, id uint, acc Access) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := r.find(&classroom, id, "classroom"); err != nil {
		return nil, err
	}
	if acc == Write && !actor.IsAdmin() && classroom.TeacherID != actor.ID {
		return nil, ErrForbidden
	}
	return &classroom, nil
}

// ClassroomOwner authorizes the actor as controller of a classroom referenced
// as a parent (wallet/enrollment/assignment creation).
func (r *Resolver) ClassroomOwner(actor Actor, classroomID uint) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := r.find(&classroom, classroomID, "classroom"); err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return &classroom, nil
	}
	if actor.IsTeacher() && classroom.TeacherID == actor.ID {
		return &classroom, nil
	}
	return nil, ErrForbidden
}

// Assignment loads an assignment and authorizes the actor. Reads are open;
// writes require the creating teacher.
func (r *Resolver) Assignment(actor Actor, id uint, acc Access) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.find(&assignment, id, "assignment"); err != nil {
		return nil, err
	}
	if acc == Write && !actor.IsAdmin() && assignment.CreatedBy != actor.ID {
		return nil, ErrForbidden
	}
	return &assignment, nil
}

// AssignmentOwner authorizes the actor against an assignment referenced as a
// parent of a budget submission. Students pass (they submit against any
// assignment); teachers must be the creator.
func (r *Resolver) AssignmentOwner(actor Actor, assignmentID uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := r.find(&assignment, assignmentID, "assignment"); err != nil {
		return nil, err
	}
	if actor.IsTeacher() && assignment.CreatedBy != actor.ID {
		return nil, ErrForbidden
	}
	return &assignment, nil
}

// WalletAccess authorizes the actor against an already-loaded wallet by
// walking wallet -> classroom -> teacher or wallet -> student.
func (r *Resolver) WalletAccess(actor Actor, wallet *models.StudentWallet) error {
	if actor.IsStudent() && wallet.StudentID != actor.ID {
		return ErrForbidden
	}
	if actor.IsTeacher() {
		if _, err := r.ClassroomOwner(actor, wallet.ClassroomID); err != nil {
			return err
		}
	}
	return nil
}

// Wallet loads a wallet and authorizes the actor against its ownership chain.
func (r *Resolver) Wallet(actor Actor, id uint) (*models.StudentWallet, error) {
	var wallet models.StudentWallet
	if err := r.find(&wallet, id, "wallet"); err != nil {
		return nil, err
	}
	if err := r.WalletAccess(actor, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Bucket resolves bucket -> wallet -> classroom.
func (r *Resolver) Bucket(actor Actor, id uint) (*models.WalletBucket, error) {
	var bucket models.WalletBucket
	if err := r.find(&bucket, id, "bucket"); err != nil {
		return nil, err
	}
	if _, err := r.Wallet(actor, bucket.WalletID); err != nil {
		return nil, err
	}
	return &bucket, nil
}

// LedgerEntry resolves entry -> wallet -> classroom.
func (r *Resolver) LedgerEntry(actor Actor, id uint) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	if err := r.find(&entry, id, "ledger entry"); err != nil {
		return nil, err
	}
	if _, err := r.Wallet(actor, entry.WalletID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Enrollment resolves enrollment -> classroom -> teacher, or the enrolled
// student for reads. Students never mutate enrollments.
func (r *Resolver) Enrollment(actor Actor, id uint, acc Access) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.find(&enrollment, id, "enrollment"); err != nil {
		return nil, err
	}
	if actor.IsStudent() {
		if acc == Write || enrollment.StudentID != actor.ID {
			return nil, ErrForbidden
		}
		return &enrollment, nil
	}
	if actor.IsTeacher() {
		if _, err := r.ClassroomOwner(actor, enrollment.ClassroomID); err != nil {
			return nil, err
		}
	}
	return &enrollment, nil
}

// SubmissionAccess authorizes the actor against an already-loaded submission:
// the owning student, or the teacher who created its assignment.
func (r *Resolver) SubmissionAccess(actor Actor, submission *models.BudgetSubmission) error {
	if actor.IsStudent() && submission.StudentID != actor.ID {
		return ErrForbidden
	}
	if actor.IsTeacher() {
		if _, err := r.AssignmentOwner(actor, submission.AssignmentID); err != nil {
			return err
		}
	}
	return nil
}

// Submission loads a budget submission and authorizes the actor.
func (r *Resolver) Submission(actor Actor, id uint) (*models.BudgetSubmission, error) {
	var submission models.BudgetSubmission
	if err := r.find(&submission, id, "budget submission"); err != nil {
		return nil, err
	}
	if err := r.SubmissionAccess(actor, &submission); err != nil {
		return nil, err
	}
	return &submission, nil
}

// LineItem resolves line item -> submission -> assignment chain.
func (r *Resolver) LineItem(actor Actor, id uint) (*models.BudgetLineItem, error) {
	var item models.BudgetLineItem
	if err := r.find(&item, id, "budget line item"); err != nil {
		return nil, err
	}
	if _, err := r.Submission(actor, item.SubmissionID); err != nil {
		return nil, err
	}
	return &item, nil
}

// User authorizes access to a user record: self or admin.
func (r *Resolver) User(actor Actor, targetID uint) error {
	if actor.IsAdmin() || actor.ID == targetID {
		return nil
	}
	return ErrForbidden
}
