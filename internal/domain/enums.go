package domain

// UserRole defines the access level of a user.
type UserRole string

const (
	RoleUser    UserRole = "USER"
	RoleManager UserRole = "MANAGER"
	RoleAdmin   UserRole = "ADMIN"
)

// IsValidUserRole reports whether r is a known user role.
func IsValidUserRole(r UserRole) bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// MeetingStatus represents the lifecycle state of a meeting.
type MeetingStatus string

const (
	StatusBooked      MeetingStatus = "BOOKED"
	StatusCompleted   MeetingStatus = "COMPLETED"
	StatusNoShow      MeetingStatus = "NO_SHOW"
	StatusCanceled    MeetingStatus = "CANCELED"
	StatusRescheduled MeetingStatus = "RESCHEDULED"
)

// ValidMeetingStatuses lists every accepted meeting status.
var ValidMeetingStatuses = []MeetingStatus{
	StatusBooked,
	StatusCompleted,
	StatusNoShow,
	StatusCanceled,
	StatusRescheduled,
}

// IsValidMeetingStatus reports whether s is a known meeting status.
func IsValidMeetingStatus(s MeetingStatus) bool {
	for _, v := range ValidMeetingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// StatusReason gives optional context for a status change. The statistics
// engine treats it as an opaque pass-through value.
type StatusReason string

const (
	ReasonCustomerCanceled StatusReason = "CUSTOMER_CANCELED"
	ReasonCustomerNoShow   StatusReason = "CUSTOMER_NO_SHOW"
	ReasonSellerCanceled   StatusReason = "SELLER_CANCELED"
	ReasonTechnicalIssue   StatusReason = "TECHNICAL_ISSUE"
	ReasonOther            StatusReason = "OTHER"
)

// StatsPeriod is a fixed calendar bucket used to scope statistics.
type StatsPeriod string

const (
	PeriodToday StatsPeriod = "today"
	PeriodWeek  StatsPeriod = "week"
	PeriodMonth StatsPeriod = "month"
	PeriodTotal StatsPeriod = "total"
)

// IsValidStatsPeriod reports whether p is a known period.
func IsValidStatsPeriod(p StatsPeriod) bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodTotal:
		return true
	}
	return false
}

// ParticipantRole selects which side of a meeting a user is counted on.
type ParticipantRole string

const (
	RoleBooker ParticipantRole = "booker"
	RoleSeller ParticipantRole = "seller"
	RoleBoth   ParticipantRole = "both"
)

// IsValidParticipantRole reports whether r is a known participant role filter.
func IsValidParticipantRole(r ParticipantRole) bool {
	switch r {
	case RoleBooker, RoleSeller, RoleBoth:
		return true
	}
	return false
}
