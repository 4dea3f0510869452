package models

// Hospital is one tenant. Subscription is "active" or "inactive"; hospitals
// are never deleted, only toggled.
type Hospital struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Subscription string `json:"subscription" db:"subscription"`
}

// ReferenceItem is a named master-data row (doctor, counsellor, procedure,
// IOL type).
type ReferenceItem struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
)
