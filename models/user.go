package models

import "time"

// UserRole is the platform-level role carried by the auth token.
type UserRole string

const (
	RoleFarmer UserRole = "FARMER"
	RoleOwner  UserRole = "OWNER"
	RoleAdmin  UserRole = "ADMIN"
)

// VerificationStatus is the admin-gated approval an owner must hold before
// their listings become bookable.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING_VERIFICATION"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// OwnerProfile carries owner-specific verification state.
type OwnerProfile struct {
	VerificationStatus VerificationStatus `bson:"verificationStatus" json:"verificationStatus"`
	VerifiedAt         *time.Time         `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
}

// User is the authenticated principal. Registration and login live in the
// identity service; the booking core only reads these records for
// authorization and read-side assembly.
type User struct {
	ID           string        `bson:"id" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	Phone        string        `bson:"phone" json:"phone"`
	Role         UserRole      `bson:"role" json:"role"`
	OwnerProfile *OwnerProfile `bson:"ownerProfile,omitempty" json:"ownerProfile,omitempty"`
	IsActive     bool          `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PartySummary is the trimmed counterparty view attached to booking and
// dispute reads.
type PartySummary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone,omitempty"`
	Role  UserRole `json:"role,omitempty"`
}

// Summary projects a user into the fields exposed to the other party.
func (u *User) Summary() PartySummary {
	return PartySummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.Role}
}
