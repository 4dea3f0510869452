package services

import (
	"database/sql"

	"github.com/ophthalmoai/saas-backend/internal/patients/models"
)

// FormLookups is everything the add-patient form needs to render its
// dropdowns.
type FormLookups struct {
	Procedures  []string `json:"procedures"`
	IOLTypes    []string `json:"iol_types"`
	Doctors     []string `json:"doctors"`
	Counsellors []string `json:"counsellors"`
	VisionScale []string `json:"vision_scale"`
	Genders     []string `json:"genders"`
	Statuses    []string `json:"statuses"`
}

type LookupService struct {
	DB *sql.DB
}

func NewLookupService(db *sql.DB) *LookupService {
	return &LookupService{DB: db}
}

func (s *LookupService) names(query string, args ...interface{}) ([]string, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	return result, rows.Err()
}

// FormLookups loads the master-data name lists. Procedures and IOL types are
// global; doctors and counsellors belong to the hospital.
func (s *LookupService) FormLookups(hospitalID int) (*FormLookups, error) {
	procedures, err := s.names("SELECT name FROM procedures ORDER BY id")
	if err != nil {
		return nil, err
	}
	iolTypes, err := s.names("SELECT name FROM iol_types ORDER BY id")
	if err != nil {
		return nil, err
	}
	doctors, err := s.names("SELECT name FROM doctors WHERE hospital_id = ? ORDER BY id", hospitalID)
	if err != nil {
		return nil, err
	}
	counsellors, err := s.names("SELECT name FROM counsellors WHERE hospital_id = ? ORDER BY id", hospitalID)
	if err != nil {
		return nil, err
	}

	return &FormLookups{
		Procedures:  procedures,
		IOLTypes:    iolTypes,
		Doctors:     doctors,
		Counsellors: counsellors,
		VisionScale: models.VisionScale,
		Genders:     []string{"Male", "Female"},
		Statuses:    []string{models.StatusPending, models.StatusConverted},
	}, nil
}
