package domain

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

const (
	EnrollmentActive   = "active"
	EnrollmentArchived = "archived"
)

const (
	AssignmentDraft  = "draft"
	AssignmentActive = "active"
	AssignmentClosed = "closed"
)

const (
	EntryDeposit    = "deposit"
	EntryWithdrawal = "withdrawal"
)

const (
	SourceTeacherGrant  = "teacher_grant"
	SourceStudentAction = "student_action"
)

const (
	SubmissionSubmitted = "submitted"
	SubmissionApproved  = "approved"
	SubmissionRevise    = "revise"
)
