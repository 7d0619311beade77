package domain

// Role represents user role in the system
type Role string

const (
	RoleSeeker  Role = "SEEKER"
	RoleCompany Role = "COMPANY"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole converts a raw claim value into a Role
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleSeeker, RoleCompany, RoleAdmin:
		return r, true
	}
	return "", false
}

// Actor is the authenticated caller of a service operation.
// ProfileID is the seeker or company profile id; empty for admins.
type Actor struct {
	UserID    string
	Email     string
	Role      Role
	ProfileID string
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RequestStatus is the lifecycle state of a job request.
//
//	pending ──► approved
//	   │
//	   └──────► rejected
//
// approved and rejected are terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending: {RequestApproved, RequestRejected},
}

// ParseRequestStatus converts a raw string to a RequestStatus
func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch st := RequestStatus(s); st {
	case RequestPending, RequestApproved, RequestRejected:
		return st, true
	}
	return "", false
}

// IsTerminal reports whether no transition leaves the status
func (s RequestStatus) IsTerminal() bool {
	_, ok := requestTransitions[s]
	return !ok
}

// CanTransition reports whether from -> to is part of the lifecycle
func CanTransition(from, to RequestStatus) bool {
	for _, s := range requestTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplicationStatus values
const (
	ApplicationApplied = "applied"
)
