package services

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ophthalmoai/saas-backend/internal/patients/models"
)

// rosterHeader matches the downloadable patient report of the dashboard.
var rosterHeader = []string{
	"Patient ID", "Name", "Phone", "Procedure", "IOL",
	"Doctor", "Counsellor", "Cost", "Status",
}

var pendingHeader = []string{
	"Patient ID", "Name", "Phone", "Procedure", "Cost", "Created On", "Days Pending",
}

// WriteRosterCSV streams the patient roster as UTF-8 CSV, one row per patient.
func WriteRosterCSV(w io.Writer, patients []models.Patient) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rosterHeader); err != nil {
		return err
	}
	for _, p := range patients {
		iol := "-"
		if p.IOL != nil {
			iol = *p.IOL
		}
		record := []string{
			p.PatientID, p.Name, p.Phone, p.Procedure, iol,
			p.Doctor, p.Counsellor,
			strconv.FormatFloat(p.Cost, 'f', 2, 64),
			p.Status,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePendingCSV streams the filtered pending list as UTF-8 CSV.
func WritePendingCSV(w io.Writer, patients []models.PendingPatient) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pendingHeader); err != nil {
		return err
	}
	for _, p := range patients {
		record := []string{
			p.PatientID, p.Name, p.Phone, p.Procedure,
			strconv.FormatFloat(p.Cost, 'f', 2, 64),
			p.CreatedOn.Format("2006-01-02 15:04:05"),
			strconv.Itoa(p.DaysPending),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
