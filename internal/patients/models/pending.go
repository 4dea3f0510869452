package models

import "time"

// Aging bucket keys in ascending order. "all" is the pseudo-bucket showing
// the whole pending set.
const (
	BucketAll = "all"

	Bucket0to15  = "0-15"
	Bucket15to30 = "15-30"
	Bucket30to60 = "30-60"
	Bucket60to90 = "60-90"
	Bucket90Plus = "90+"
)

var BucketKeys = []string{Bucket0to15, Bucket15to30, Bucket30to60, Bucket60to90, Bucket90Plus}

// Priority labels derived from days pending.
const (
	PriorityHigh     = "High Priority"
	PriorityModerate = "Moderate Priority"
	PriorityNormal   = "Normal"
)

// DaysPending is the whole number of days since the patient was advised.
func DaysPending(createdOn, now time.Time) int {
	return int(now.Sub(createdOn).Hours() / 24)
}

// BucketFor assigns a pending patient to exactly one aging band.
func BucketFor(days int) string {
	switch {
	case days <= 15:
		return Bucket0to15
	case days <= 30:
		return Bucket15to30
	case days <= 60:
		return Bucket30to60
	case days <= 90:
		return Bucket60to90
	default:
		return Bucket90Plus
	}
}

// PriorityFor labels follow-up urgency from days pending.
func PriorityFor(days int) string {
	switch {
	case days > 60:
		return PriorityHigh
	case days > 30:
		return PriorityModerate
	default:
		return PriorityNormal
	}
}

// ValidBucket reports whether key names a real band or the "all" pseudo-bucket.
func ValidBucket(key string) bool {
	if key == BucketAll {
		return true
	}
	for _, k := range BucketKeys {
		if k == key {
			return true
		}
	}
	return false
}

// PendingPatient is one row of the follow-up tracker.
type PendingPatient struct {
	PatientID   string    `json:"patient_id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Procedure   string    `json:"procedure"`
	Doctor      string    `json:"doctor"`
	Cost        float64   `json:"cost"`
	CreatedOn   time.Time `json:"created_on"`
	DaysPending int       `json:"days_pending"`
	Bucket      string    `json:"bucket"`
	Priority    string    `json:"priority"`
	WALink      string    `json:"wa_link"`
}

// PendingSummary is the tracker response: per-bucket counts plus the rows of
// the selected bucket.
type PendingSummary struct {
	Bucket       string           `json:"bucket"`
	BucketCounts map[string]int   `json:"bucket_counts"`
	Total        int              `json:"total"`
	Patients     []PendingPatient `json:"patients"`
}
