package employee

import (
	"time"

	"github.com/stafflane/backoffice-go/internal/domain/shift"
)

const (
	StatusActive     = "active"
	StatusPending    = "pending"
	StatusResigned   = "resigned"
	StatusTerminated = "terminated"
)

// Employee is the minimal read model the attendance subsystem needs: who the
// employee is, whether they may act, which shift block applies, and the
// employment period that clips absence accounting.
type Employee struct {
	ID         string
	CompanyID  string
	FullName   string
	Status     string
	ShiftKind  shift.Kind
	JoinDate   time.Time
	ResignDate *time.Time
}

// CanAttend reports whether the employment status allows attendance actions.
func (e Employee) CanAttend() bool {
	return e.Status == StatusActive
}

// EmployedOn reports whether the date falls inside the employment period.
func (e Employee) EmployedOn(date time.Time) bool {
	if date.Before(e.JoinDate) {
		return false
	}
	if e.ResignDate != nil && date.After(*e.ResignDate) {
		return false
	}
	return true
}
