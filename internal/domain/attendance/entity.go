package attendance

import (
	"time"

	"github.com/stafflane/backoffice-go/internal/domain/shift"
)

// Record statuses. Present, graced and late come straight from the check-in
// classification; absent and on_leave are written by the sweep jobs and the
// reporters.
const (
	StatusPresent = "present"
	StatusGraced  = "graced"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusOnLeave = "on_leave"
)

// Record is one attendance day for one employee. The (EmployeeID, AnchorDate)
// pair is the record's identity and is unique in storage. ShiftKind and the
// window instants are snapshotted at check-in so that later config edits do
// not retroactively reclassify history.
type Record struct {
	ID         string
	EmployeeID string
	CompanyID  string
	// AnchorDate is the calendar day the record belongs to, which for a
	// cross-midnight night shift is not necessarily the date of the check-in
	// timestamp.
	AnchorDate time.Time
	ShiftKind  shift.Kind

	WindowStart *time.Time
	GraceCutoff *time.Time
	WindowEnd   *time.Time

	CheckIn  *time.Time
	CheckOut *time.Time

	Status string
	// IsStatusUpdated marks a manual override; once set, classification and
	// aggregation keep the stored status instead of recomputing it.
	IsStatusUpdated bool
	// AutoClosed marks a checkout written by the sweep job rather than the
	// employee.
	AutoClosed bool

	WorkedMinutes   *int
	LateMinutes     *int
	GracedMinutes   *int
	OvertimeMinutes *int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName *string
}

// Open reports whether the record has a check-in but no check-out yet.
func (r Record) Open() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// SnapshotWindow rebuilds the shift window stored on the record at check-in
// time. ok is false when the record predates window snapshotting.
func (r Record) SnapshotWindow() (shift.Window, bool) {
	if r.WindowStart == nil || r.GraceCutoff == nil || r.WindowEnd == nil {
		return shift.Window{}, false
	}
	return shift.Window{
		Start:       *r.WindowStart,
		GraceCutoff: *r.GraceCutoff,
		End:         *r.WindowEnd,
	}, true
}
