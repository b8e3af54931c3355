package models

type StudentStatus string
type ApplicationStatus string
type Role string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusArchived StudentStatus = "archived"

	// ApplicationStatus tracks both the application record and the
	// denormalized copy on the student record.
	ApplicationStatusNone     ApplicationStatus = "none"
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)
