package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/ophthalmoai/saas-backend/internal/patients/models"
)

const insertPatientSQL = "INSERT INTO patients (patient_id, name, phone, city, age, gender, vision_od, vision_os, `procedure`, iol, doctor, counsellor, cost, status, created_on, hospital_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

func newMock(t *testing.T) (*PatientService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPatientService(db), mock
}

func baseRequest() models.CreatePatientRequest {
	return models.CreatePatientRequest{
		Name:       "Asha Rao",
		Phone:      "919876543210",
		City:       "Pune",
		Age:        64,
		Gender:     "Female",
		VisionOD:   "6/36",
		VisionOS:   "6/60",
		Procedure:  "Lasik",
		Doctor:     "Dr. Mehta",
		Counsellor: "Kavita",
		Cost:       25000,
	}
}

func TestCreatePatient(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	t.Run("cataract without IOL is rejected", func(t *testing.T) {
		svc, _ := newMock(t)
		req := baseRequest()
		req.Procedure = models.ProcedureCataract
		req.IOL = nil

		if _, err := svc.CreatePatient(req, 1, now); !errors.Is(err, ErrIOLRequired) {
			t.Fatalf("err = %v, want ErrIOLRequired", err)
		}
	})

	t.Run("non-cataract persists a NULL IOL even when supplied", func(t *testing.T) {
		svc, mock := newMock(t)
		req := baseRequest()
		iol := "Monofocal"
		req.IOL = &iol // leaked UI state, must not be stored

		mock.ExpectExec(insertPatientSQL).
			WithArgs(sqlmock.AnyArg(), req.Name, req.Phone, req.City, req.Age, req.Gender,
				req.VisionOD, req.VisionOS, req.Procedure, nil,
				req.Doctor, req.Counsellor, req.Cost, models.StatusPending, now, 1).
			WillReturnResult(sqlmock.NewResult(7, 1))

		p, err := svc.CreatePatient(req, 1, now)
		if err != nil {
			t.Fatalf("CreatePatient: %v", err)
		}
		if p.IOL != nil {
			t.Errorf("IOL = %v, want nil", *p.IOL)
		}
		if p.Status != models.StatusPending {
			t.Errorf("status = %q, want Pending", p.Status)
		}
		if len(p.PatientID) != len(models.PatientCodePrefix)+6 {
			t.Errorf("patient code %q has unexpected length", p.PatientID)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})

	t.Run("cataract keeps the selected IOL", func(t *testing.T) {
		svc, mock := newMock(t)
		req := baseRequest()
		req.Procedure = models.ProcedureCataract
		iol := "Multifocal"
		req.IOL = &iol

		mock.ExpectExec(insertPatientSQL).
			WithArgs(sqlmock.AnyArg(), req.Name, req.Phone, req.City, req.Age, req.Gender,
				req.VisionOD, req.VisionOS, req.Procedure, &iol,
				req.Doctor, req.Counsellor, req.Cost, models.StatusPending, now, 1).
			WillReturnResult(sqlmock.NewResult(8, 1))

		p, err := svc.CreatePatient(req, 1, now)
		if err != nil {
			t.Fatalf("CreatePatient: %v", err)
		}
		if p.IOL == nil || *p.IOL != "Multifocal" {
			t.Errorf("IOL not persisted: %v", p.IOL)
		}
	})

	t.Run("off-scale vision is rejected", func(t *testing.T) {
		svc, _ := newMock(t)
		req := baseRequest()
		req.VisionOD = "20/20"

		if _, err := svc.CreatePatient(req, 1, now); !errors.Is(err, ErrInvalidVision) {
			t.Fatalf("err = %v, want ErrInvalidVision", err)
		}
	})

	t.Run("code collision is retried", func(t *testing.T) {
		svc, mock := newMock(t)
		req := baseRequest()

		dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
		mock.ExpectExec(insertPatientSQL).WillReturnError(dup)
		mock.ExpectExec(insertPatientSQL).WillReturnResult(sqlmock.NewResult(9, 1))

		if _, err := svc.CreatePatient(req, 1, now); err != nil {
			t.Fatalf("CreatePatient after retry: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
	})
}

func TestConvertPatientIdempotent(t *testing.T) {
	svc, mock := newMock(t)

	// applying the conversion twice issues the same statement and leaves the
	// same persisted state
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("SELECT id FROM patients WHERE patient_id = ? AND hospital_id = ?").
			WithArgs("PAT1a2b3c", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectExec("UPDATE patients SET status = ? WHERE patient_id = ? AND hospital_id = ?").
			WithArgs(models.StatusConverted, "PAT1a2b3c", 1).
			WillReturnResult(sqlmock.NewResult(0, int64(1-i))) // second run changes 0 rows
	}

	if err := svc.ConvertPatient("PAT1a2b3c", 1); err != nil {
		t.Fatalf("first convert: %v", err)
	}
	if err := svc.ConvertPatient("PAT1a2b3c", 1); err != nil {
		t.Fatalf("second convert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConvertPatientUnknownCode(t *testing.T) {
	svc, mock := newMock(t)

	mock.ExpectQuery("SELECT id FROM patients WHERE patient_id = ? AND hospital_id = ?").
		WithArgs("PATffffff", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if err := svc.ConvertPatient("PATffffff", 1); !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("err = %v, want ErrPatientNotFound", err)
	}
}

func TestPendingPatientsBuckets(t *testing.T) {
	svc, mock := newMock(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"patient_id", "name", "phone", "procedure", "doctor", "cost", "created_on"}).
		AddRow("PAT000001", "Fresh", "91111", "Lasik", "Dr. A", 1000.0, now.AddDate(0, 0, -3)).
		AddRow("PAT000002", "Aging", "92222", "Cataract", "Dr. B", 2000.0, now.AddDate(0, 0, -45)).
		AddRow("PAT000003", "Stale", "93333", "Cataract", "Dr. B", 3000.0, now.AddDate(0, 0, -95))

	mock.ExpectQuery("SELECT patient_id, name, phone, `procedure`, doctor, cost, created_on FROM patients WHERE hospital_id = ? AND status = ? ORDER BY created_on DESC").
		WithArgs(1, models.StatusPending).
		WillReturnRows(rows)

	summary, err := svc.PendingPatients(1, models.Bucket90Plus, now)
	if err != nil {
		t.Fatalf("PendingPatients: %v", err)
	}

	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if summary.BucketCounts[models.Bucket0to15] != 1 ||
		summary.BucketCounts[models.Bucket30to60] != 1 ||
		summary.BucketCounts[models.Bucket90Plus] != 1 {
		t.Errorf("bucket counts = %v", summary.BucketCounts)
	}
	if len(summary.Patients) != 1 || summary.Patients[0].PatientID != "PAT000003" {
		t.Fatalf("filtered rows = %+v, want only the 95-day patient", summary.Patients)
	}
	if summary.Patients[0].Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want High Priority", summary.Patients[0].Priority)
	}
	if summary.Patients[0].WALink == "" {
		t.Error("expected a WhatsApp link on the pending row")
	}
}
