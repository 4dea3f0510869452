package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/ophthalmoai/saas-backend/internal/patients/models"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrIOLRequired     = errors.New("IOL type is required for Cataract")
	ErrInvalidVision   = errors.New("vision value not on the scale")
	ErrInvalidStatus   = errors.New("status must be Pending or Converted")
)

const codeAttempts = 5

type PatientService struct {
	DB *sql.DB
}

func NewPatientService(db *sql.DB) *PatientService {
	return &PatientService{DB: db}
}

// newPatientCode generates a human-facing code: fixed prefix plus a short
// random suffix. Uniqueness is enforced by the store, not here.
func newPatientCode() string {
	return models.PatientCodePrefix + uuid.NewString()[:6]
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// CreatePatient inserts a new advised patient for the hospital. An IOL type
// must accompany the Cataract procedure; for every other procedure the IOL is
// persisted as NULL no matter what the form submitted. Code collisions are
// retried against the UNIQUE constraint.
func (s *PatientService) CreatePatient(req models.CreatePatientRequest, hospitalID int, now time.Time) (*models.Patient, error) {
	iol := req.IOL
	if req.Procedure == models.ProcedureCataract {
		if iol == nil || *iol == "" {
			return nil, ErrIOLRequired
		}
	} else {
		iol = nil
	}

	if !models.ValidVision(req.VisionOD) || !models.ValidVision(req.VisionOS) {
		return nil, ErrInvalidVision
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if status != models.StatusPending && status != models.StatusConverted {
		return nil, ErrInvalidStatus
	}

	p := models.Patient{
		Name:       req.Name,
		Phone:      req.Phone,
		City:       req.City,
		Age:        req.Age,
		Gender:     req.Gender,
		VisionOD:   req.VisionOD,
		VisionOS:   req.VisionOS,
		Procedure:  req.Procedure,
		IOL:        iol,
		Doctor:     req.Doctor,
		Counsellor: req.Counsellor,
		Cost:       req.Cost,
		Status:     status,
		CreatedOn:  now,
		HospitalID: hospitalID,
	}

	query := "INSERT INTO patients (patient_id, name, phone, city, age, gender, vision_od, vision_os, `procedure`, iol, doctor, counsellor, cost, status, created_on, hospital_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	var lastErr error
	for attempt := 0; attempt < codeAttempts; attempt++ {
		p.PatientID = newPatientCode()
		res, err := s.DB.Exec(query,
			p.PatientID, p.Name, p.Phone, p.City, p.Age, p.Gender,
			p.VisionOD, p.VisionOS, p.Procedure, p.IOL,
			p.Doctor, p.Counsellor, p.Cost, p.Status, p.CreatedOn, p.HospitalID,
		)
		if err != nil {
			if isDuplicateKey(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		if id, err := res.LastInsertId(); err == nil {
			p.ID = int(id)
		}
		return &p, nil
	}
	return nil, fmt.Errorf("could not allocate a unique patient code: %w", lastErr)
}

// ListPatients returns the hospital roster, newest first. A non-empty search
// term matches name, phone or patient code case-insensitively.
func (s *PatientService) ListPatients(hospitalID int, search string) ([]models.Patient, error) {
	query := "SELECT id, patient_id, name, phone, city, age, gender, vision_od, vision_os, `procedure`, iol, doctor, counsellor, cost, status, created_on, hospital_id FROM patients WHERE hospital_id = ?"
	args := []interface{}{hospitalID}

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query += " AND (LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(patient_id) LIKE ?)"
		args = append(args, like, like, like)
	}
	query += " ORDER BY created_on DESC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := []models.Patient{}
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(
			&p.ID, &p.PatientID, &p.Name, &p.Phone, &p.City, &p.Age, &p.Gender,
			&p.VisionOD, &p.VisionOS, &p.Procedure, &p.IOL,
			&p.Doctor, &p.Counsellor, &p.Cost, &p.Status, &p.CreatedOn, &p.HospitalID,
		); err != nil {
			return nil, err
		}
		if p.Status == models.StatusPending {
			p.WALink = models.WhatsAppLink(p.Name, p.Procedure, p.Phone)
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

// ConvertPatient overwrites the status to Converted, keyed by patient code.
// Re-applying to an already converted patient is a no-op, not an error.
func (s *PatientService) ConvertPatient(patientID string, hospitalID int) error {
	var id int
	err := s.DB.QueryRow("SELECT id FROM patients WHERE patient_id = ? AND hospital_id = ?", patientID, hospitalID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPatientNotFound
		}
		return err
	}
	_, err = s.DB.Exec("UPDATE patients SET status = ? WHERE patient_id = ? AND hospital_id = ?",
		models.StatusConverted, patientID, hospitalID)
	return err
}

// PendingPatients builds the follow-up tracker: every pending patient with
// days-pending, aging bucket and priority, plus per-bucket counts. bucket
// narrows the returned rows; BucketAll returns the full pending set.
func (s *PatientService) PendingPatients(hospitalID int, bucket string, now time.Time) (*models.PendingSummary, error) {
	query := "SELECT patient_id, name, phone, `procedure`, doctor, cost, created_on FROM patients WHERE hospital_id = ? AND status = ? ORDER BY created_on DESC"
	rows, err := s.DB.Query(query, hospitalID, models.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &models.PendingSummary{
		Bucket:       bucket,
		BucketCounts: map[string]int{},
		Patients:     []models.PendingPatient{},
	}
	for _, k := range models.BucketKeys {
		summary.BucketCounts[k] = 0
	}

	for rows.Next() {
		var p models.PendingPatient
		if err := rows.Scan(&p.PatientID, &p.Name, &p.Phone, &p.Procedure, &p.Doctor, &p.Cost, &p.CreatedOn); err != nil {
			return nil, err
		}
		p.DaysPending = models.DaysPending(p.CreatedOn, now)
		p.Bucket = models.BucketFor(p.DaysPending)
		p.Priority = models.PriorityFor(p.DaysPending)
		p.WALink = models.WhatsAppLink(p.Name, p.Procedure, p.Phone)

		summary.BucketCounts[p.Bucket]++
		summary.Total++
		if bucket == models.BucketAll || p.Bucket == bucket {
			summary.Patients = append(summary.Patients, p)
		}
	}
	return summary, rows.Err()
}
