package models

import "time"

const (
	StatusPending   = "Pending"
	StatusConverted = "Converted"

	// ProcedureCataract is the one procedure that carries an IOL selection.
	ProcedureCataract = "Cataract"

	PatientCodePrefix = "PAT"
)

// VisionScale is the fixed visual-acuity enumeration for OD/OS fields.
var VisionScale = []string{
	"6/6", "6/9", "6/12", "6/18", "6/24",
	"6/36", "6/60", "HM", "PLPR+", "PLPR-",
}

// ValidVision reports whether v is on the scale.
func ValidVision(v string) bool {
	for _, s := range VisionScale {
		if s == v {
			return true
		}
	}
	return false
}

// Patient is one advised-patient row, always scoped to a single hospital.
type Patient struct {
	ID         int       `json:"id" db:"id"`
	PatientID  string    `json:"patient_id" db:"patient_id"`
	Name       string    `json:"name" db:"name"`
	Phone      string    `json:"phone" db:"phone"`
	City       string    `json:"city" db:"city"`
	Age        int       `json:"age" db:"age"`
	Gender     string    `json:"gender" db:"gender"`
	VisionOD   string    `json:"vision_od" db:"vision_od"`
	VisionOS   string    `json:"vision_os" db:"vision_os"`
	Procedure  string    `json:"procedure" db:"procedure"`
	IOL        *string   `json:"iol" db:"iol"`
	Doctor     string    `json:"doctor" db:"doctor"`
	Counsellor string    `json:"counsellor" db:"counsellor"`
	Cost       float64   `json:"cost" db:"cost"`
	Status     string    `json:"status" db:"status"`
	CreatedOn  time.Time `json:"created_on" db:"created_on"`
	HospitalID int       `json:"hospital_id" db:"hospital_id"`

	// WALink is filled for Pending rows so the frontend can open the
	// reminder chat directly.
	WALink string `json:"wa_link,omitempty"`
}

// CreatePatientRequest is the add-patient form payload.
type CreatePatientRequest struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	City       string  `json:"city"`
	Age        int     `json:"age"`
	Gender     string  `json:"gender"`
	VisionOD   string  `json:"vision_od"`
	VisionOS   string  `json:"vision_os"`
	Procedure  string  `json:"procedure"`
	IOL        *string `json:"iol"`
	Doctor     string  `json:"doctor"`
	Counsellor string  `json:"counsellor"`
	Cost       float64 `json:"cost"`
	Status     string  `json:"status"`
}
