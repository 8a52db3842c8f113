package models

// Role of an authenticated portal session.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Session is the ephemeral login record carried by the access token. It is
// not cross-validated against any student record at login time; the
// duplicate-registration check happens at registration, keyed by national id.
type Session struct {
	Username    string `json:"username"`
	NationalID  string `json:"nationalId"`
	PhoneNumber string `json:"phoneNumber"`
	Role        Role   `json:"role"`
}
