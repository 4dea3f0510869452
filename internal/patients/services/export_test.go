package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/ophthalmoai/saas-backend/internal/patients/models"
)

func TestPendingCSVRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	pending := []models.PendingPatient{
		{PatientID: "PAT0a1b2c", Name: "Asha, Rao", Phone: "91111", Procedure: "Cataract", Cost: 45000, CreatedOn: now.AddDate(0, 0, -95), DaysPending: 95},
		{PatientID: "PAT3d4e5f", Name: "Vikram", Phone: "92222", Procedure: "Lasik", Cost: 30000, CreatedOn: now.AddDate(0, 0, -10), DaysPending: 10},
	}

	var buf bytes.Buffer
	if err := WritePendingCSV(&buf, pending); err != nil {
		t.Fatalf("WritePendingCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(records) != len(pending)+1 {
		t.Fatalf("rows = %d, want %d data rows plus header", len(records), len(pending))
	}
	if records[0][0] != "Patient ID" {
		t.Errorf("header = %v, want human-readable column names", records[0])
	}
	for i, p := range pending {
		if records[i+1][0] != p.PatientID {
			t.Errorf("row %d code = %q, want %q", i, records[i+1][0], p.PatientID)
		}
	}
	// the embedded comma in the name must survive the round trip
	if records[1][1] != "Asha, Rao" {
		t.Errorf("name = %q, quoting broken", records[1][1])
	}
}

func TestRosterCSV(t *testing.T) {
	iol := "Monofocal"
	patients := []models.Patient{
		{PatientID: "PATaaaaaa", Name: "One", Phone: "9", Procedure: "Cataract", IOL: &iol, Doctor: "Dr. A", Counsellor: "C", Cost: 1000, Status: models.StatusConverted},
		{PatientID: "PATbbbbbb", Name: "Two", Phone: "9", Procedure: "Lasik", Doctor: "Dr. B", Counsellor: "C", Cost: 500, Status: models.StatusPending},
	}

	var buf bytes.Buffer
	if err := WriteRosterCSV(&buf, patients); err != nil {
		t.Fatalf("WriteRosterCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want 3", len(records))
	}
	if records[1][4] != "Monofocal" {
		t.Errorf("IOL cell = %q, want Monofocal", records[1][4])
	}
	if records[2][4] != "-" {
		t.Errorf("empty IOL cell = %q, want -", records[2][4])
	}
}
