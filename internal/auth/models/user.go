package models

// User is an account row. Password holds the bcrypt hash, never the secret
// itself. HospitalID is nil for the master account.
type User struct {
	ID         int    `json:"id" db:"id"`
	Username   string `json:"username" db:"username"`
	Password   string `json:"-" db:"password"`
	Role       string `json:"role" db:"role"`
	HospitalID *int   `json:"hospital_id" db:"hospital_id"`
}
