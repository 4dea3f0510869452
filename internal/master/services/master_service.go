package services

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ophthalmoai/saas-backend/internal/master/models"
	"github.com/ophthalmoai/saas-backend/pkg/utils"
)

var ErrHospitalNotFound = errors.New("hospital not found")

// MasterService covers tenant provisioning: hospitals and their admin
// accounts. Master-only.
type MasterService struct {
	DB *sql.DB
}

func NewMasterService(db *sql.DB) *MasterService {
	return &MasterService{DB: db}
}

func (s *MasterService) CreateHospital(name, subscription string) (*models.Hospital, error) {
	if subscription != models.SubscriptionActive && subscription != models.SubscriptionInactive {
		subscription = models.SubscriptionActive
	}
	res, err := s.DB.Exec("INSERT INTO hospitals (name, subscription) VALUES (?, ?)", name, subscription)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Hospital{ID: int(id), Name: name, Subscription: subscription}, nil
}

func (s *MasterService) ListHospitals() ([]models.Hospital, error) {
	rows, err := s.DB.Query("SELECT id, name, subscription FROM hospitals ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hospitals := []models.Hospital{}
	for rows.Next() {
		var h models.Hospital
		if err := rows.Scan(&h.ID, &h.Name, &h.Subscription); err != nil {
			return nil, err
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, rows.Err()
}

// ToggleSubscription flips active/inactive for one hospital.
func (s *MasterService) ToggleSubscription(id int) (*models.Hospital, error) {
	var h models.Hospital
	err := s.DB.QueryRow("SELECT id, name, subscription FROM hospitals WHERE id = ?", id).
		Scan(&h.ID, &h.Name, &h.Subscription)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}

	if h.Subscription == models.SubscriptionActive {
		h.Subscription = models.SubscriptionInactive
	} else {
		h.Subscription = models.SubscriptionActive
	}
	if _, err := s.DB.Exec("UPDATE hospitals SET subscription = ? WHERE id = ?", h.Subscription, h.ID); err != nil {
		return nil, err
	}
	return &h, nil
}

// CreateHospitalAdmin provisions the hospital_admin account for a tenant.
// The password is stored as a bcrypt hash.
func (s *MasterService) CreateHospitalAdmin(username, password string, hospitalID int) (int, error) {
	var exists int
	err := s.DB.QueryRow("SELECT id FROM hospitals WHERE id = ?", hospitalID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrHospitalNotFound
		}
		return 0, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	res, err := s.DB.Exec("INSERT INTO users (username, password, role, hospital_id) VALUES (?, ?, ?, ?)",
		username, string(hashed), utils.RoleHospitalAdmin, hospitalID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}
