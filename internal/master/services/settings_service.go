package services

import (
	"database/sql"
	"errors"

	"github.com/ophthalmoai/saas-backend/internal/master/models"
)

// ErrReferenced is returned when a master-data row is still referenced by
// patient records. Deleting it would leave dangling names in the roster.
var ErrReferenced = errors.New("still referenced by existing patients")

// SettingsService manages hospital configuration and the master-data lists.
// Doctors and counsellors are hospital scoped; procedures and IOL types are
// global.
type SettingsService struct {
	DB *sql.DB
}

func NewSettingsService(db *sql.DB) *SettingsService {
	return &SettingsService{DB: db}
}

func (s *SettingsService) GetHospital(id int) (*models.Hospital, error) {
	var h models.Hospital
	err := s.DB.QueryRow("SELECT id, name, subscription FROM hospitals WHERE id = ?", id).
		Scan(&h.ID, &h.Name, &h.Subscription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (s *SettingsService) UpdateHospital(id int, name, subscription string) error {
	if subscription != models.SubscriptionActive && subscription != models.SubscriptionInactive {
		return errors.New("subscription must be active or inactive")
	}
	res, err := s.DB.Exec("UPDATE hospitals SET name = ?, subscription = ? WHERE id = ?", name, subscription, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrHospitalNotFound
	}
	return nil
}

func (s *SettingsService) listItems(query string, args ...interface{}) ([]models.ReferenceItem, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ReferenceItem{}
	for rows.Next() {
		var item models.ReferenceItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// referenced reports whether any patient row still points at the given name
// through the column checked by query.
func (s *SettingsService) referenced(query string, args ...interface{}) (bool, error) {
	var count int
	if err := s.DB.QueryRow(query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// --- Doctors ---

func (s *SettingsService) ListDoctors(hospitalID int) ([]models.ReferenceItem, error) {
	return s.listItems("SELECT id, name FROM doctors WHERE hospital_id = ? ORDER BY id", hospitalID)
}

func (s *SettingsService) AddDoctor(name string, hospitalID int) error {
	_, err := s.DB.Exec("INSERT INTO doctors (name, hospital_id) VALUES (?, ?)", name, hospitalID)
	return err
}

func (s *SettingsService) DeleteDoctor(id, hospitalID int) error {
	var name string
	err := s.DB.QueryRow("SELECT name FROM doctors WHERE id = ? AND hospital_id = ?", id, hospitalID).Scan(&name)
	if err != nil {
		return err
	}
	inUse, err := s.referenced("SELECT COUNT(*) FROM patients WHERE doctor = ? AND hospital_id = ?", name, hospitalID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrReferenced
	}
	_, err = s.DB.Exec("DELETE FROM doctors WHERE id = ? AND hospital_id = ?", id, hospitalID)
	return err
}

// --- Counsellors ---

func (s *SettingsService) ListCounsellors(hospitalID int) ([]models.ReferenceItem, error) {
	return s.listItems("SELECT id, name FROM counsellors WHERE hospital_id = ? ORDER BY id", hospitalID)
}

func (s *SettingsService) AddCounsellor(name string, hospitalID int) error {
	_, err := s.DB.Exec("INSERT INTO counsellors (name, hospital_id) VALUES (?, ?)", name, hospitalID)
	return err
}

func (s *SettingsService) DeleteCounsellor(id, hospitalID int) error {
	var name string
	err := s.DB.QueryRow("SELECT name FROM counsellors WHERE id = ? AND hospital_id = ?", id, hospitalID).Scan(&name)
	if err != nil {
		return err
	}
	inUse, err := s.referenced("SELECT COUNT(*) FROM patients WHERE counsellor = ? AND hospital_id = ?", name, hospitalID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrReferenced
	}
	_, err = s.DB.Exec("DELETE FROM counsellors WHERE id = ? AND hospital_id = ?", id, hospitalID)
	return err
}

// --- Procedures (global) ---

func (s *SettingsService) ListProcedures() ([]models.ReferenceItem, error) {
	return s.listItems("SELECT id, name FROM procedures ORDER BY id")
}

func (s *SettingsService) AddProcedure(name string) error {
	_, err := s.DB.Exec("INSERT INTO procedures (name) VALUES (?)", name)
	return err
}

func (s *SettingsService) DeleteProcedure(id int) error {
	var name string
	if err := s.DB.QueryRow("SELECT name FROM procedures WHERE id = ?", id).Scan(&name); err != nil {
		return err
	}
	inUse, err := s.referenced("SELECT COUNT(*) FROM patients WHERE `procedure` = ?", name)
	if err != nil {
		return err
	}
	if inUse {
		return ErrReferenced
	}
	_, err = s.DB.Exec("DELETE FROM procedures WHERE id = ?", id)
	return err
}

// --- IOL types (global) ---

func (s *SettingsService) ListIOLTypes() ([]models.ReferenceItem, error) {
	return s.listItems("SELECT id, name FROM iol_types ORDER BY id")
}

func (s *SettingsService) AddIOLType(name string) error {
	_, err := s.DB.Exec("INSERT INTO iol_types (name) VALUES (?)", name)
	return err
}

func (s *SettingsService) DeleteIOLType(id int) error {
	var name string
	if err := s.DB.QueryRow("SELECT name FROM iol_types WHERE id = ?", id).Scan(&name); err != nil {
		return err
	}
	inUse, err := s.referenced("SELECT COUNT(*) FROM patients WHERE iol = ?", name)
	if err != nil {
		return err
	}
	if inUse {
		return ErrReferenced
	}
	_, err = s.DB.Exec("DELETE FROM iol_types WHERE id = ?", id)
	return err
}
