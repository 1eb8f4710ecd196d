package domain

// Role represents a user role in the system
type Role string

const (
	RoleDonor         Role = "donor"
	RoleRecipient     Role = "recipient"
	RoleHospitalStaff Role = "hospital_staff"
	RoleAdmin         Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleRecipient, RoleHospitalStaff, RoleAdmin:
		return true
	}
	return false
}

// RoleAllowed reports whether role is a member of the allowed set
func RoleAllowed(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// BloodType represents an ABO/Rh blood group
type BloodType string

const (
	BloodAPos  BloodType = "A+"
	BloodANeg  BloodType = "A-"
	BloodBPos  BloodType = "B+"
	BloodBNeg  BloodType = "B-"
	BloodABPos BloodType = "AB+"
	BloodABNeg BloodType = "AB-"
	BloodOPos  BloodType = "O+"
	BloodONeg  BloodType = "O-"
)

// Valid reports whether the blood type is one of the eight groups
func (b BloodType) Valid() bool {
	switch b {
	case BloodAPos, BloodANeg, BloodBPos, BloodBNeg, BloodABPos, BloodABNeg, BloodOPos, BloodONeg:
		return true
	}
	return false
}

// DonationStatus represents the lifecycle status of a donation appointment
type DonationStatus string

const (
	DonationPending   DonationStatus = "Pending"
	DonationCompleted DonationStatus = "Completed"
	DonationCancelled DonationStatus = "Cancelled"
)

// Valid reports whether the donation status is a known value
func (s DonationStatus) Valid() bool {
	switch s {
	case DonationPending, DonationCompleted, DonationCancelled:
		return true
	}
	return false
}

// RequestStatus represents the lifecycle status of a blood request
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestApproved  RequestStatus = "Approved"
	RequestFulfilled RequestStatus = "Fulfilled"
	RequestRejected  RequestStatus = "Rejected"
	RequestCancelled RequestStatus = "Cancelled"
)

// Valid reports whether the request status is a known value
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestFulfilled, RequestRejected, RequestCancelled:
		return true
	}
	return false
}

// Urgency represents how urgent a blood request is
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// Valid reports whether the urgency level is a known value
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// MaxReasonLength is the longest accepted request reason
const MaxReasonLength = 500
