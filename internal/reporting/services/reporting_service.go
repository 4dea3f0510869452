package services

import (
	"database/sql"

	"github.com/ophthalmoai/saas-backend/internal/common/daterange"
	"github.com/ophthalmoai/saas-backend/internal/reporting/models"
)

// ReportingService serves every read-only analytics view. All queries are
// scoped to one hospital and honor the active date range — including the
// dashboard, which the previous implementation exempted from the filter.
type ReportingService struct {
	DB *sql.DB
}

func NewReportingService(db *sql.DB) *ReportingService {
	return &ReportingService{DB: db}
}

func (s *ReportingService) loadFacts(hospitalID int, r daterange.Range) ([]models.PatientFact, error) {
	query := "SELECT `procedure`, status, cost FROM patients WHERE hospital_id = ? AND created_on BETWEEN ? AND ?"
	rows, err := s.DB.Query(query, hospitalID, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	facts := []models.PatientFact{}
	for rows.Next() {
		var f models.PatientFact
		if err := rows.Scan(&f.Procedure, &f.Status, &f.Cost); err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}

// Dashboard computes the KPI panel and the category cards.
func (s *ReportingService) Dashboard(hospitalID int, r daterange.Range) (models.DashboardData, error) {
	facts, err := s.loadFacts(hospitalID, r)
	if err != nil {
		return models.DashboardData{}, err
	}
	return ComputeDashboard(facts), nil
}

// ConversionByProcedure returns one row per distinct procedure, ordered by
// patient count descending, then procedure name.
func (s *ReportingService) ConversionByProcedure(hospitalID int, r daterange.Range) ([]models.ProcedureConversion, error) {
	query := "SELECT `procedure`, COUNT(*) AS total, " +
		"SUM(CASE WHEN status = 'Converted' THEN 1 ELSE 0 END) AS converted, " +
		"SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END) AS pending " +
		"FROM patients WHERE hospital_id = ? AND created_on BETWEEN ? AND ? " +
		"GROUP BY `procedure` ORDER BY total DESC, `procedure` ASC"
	rows, err := s.DB.Query(query, hospitalID, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []models.ProcedureConversion{}
	for rows.Next() {
		var pc models.ProcedureConversion
		if err := rows.Scan(&pc.Procedure, &pc.Total, &pc.Converted, &pc.Pending); err != nil {
			return nil, err
		}
		pc.ConversionRate = rate(pc.Converted, pc.Total)
		result = append(result, pc)
	}
	return result, rows.Err()
}

// Revenue splits cost by status overall and per procedure.
func (s *ReportingService) Revenue(hospitalID int, r daterange.Range) (models.RevenueData, error) {
	facts, err := s.loadFacts(hospitalID, r)
	if err != nil {
		return models.RevenueData{}, err
	}
	return ComputeRevenue(facts), nil
}

// DoctorLeaderboard aggregates per-doctor cases, conversions and revenue.
// A NULL cost sum counts as zero.
func (s *ReportingService) DoctorLeaderboard(hospitalID int, r daterange.Range) (models.DoctorLeaderboard, error) {
	query := "SELECT doctor, COUNT(*) AS total_cases, " +
		"SUM(CASE WHEN status = 'Converted' THEN 1 ELSE 0 END) AS converted, " +
		"COALESCE(SUM(cost), 0) AS revenue " +
		"FROM patients WHERE hospital_id = ? AND created_on BETWEEN ? AND ? " +
		"GROUP BY doctor"
	rows, err := s.DB.Query(query, hospitalID, r.Start, r.End)
	if err != nil {
		return models.DoctorLeaderboard{}, err
	}
	defer rows.Close()

	doctors := []models.DoctorStat{}
	for rows.Next() {
		var d models.DoctorStat
		if err := rows.Scan(&d.Doctor, &d.TotalCases, &d.Converted, &d.Revenue); err != nil {
			return models.DoctorLeaderboard{}, err
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return models.DoctorLeaderboard{}, err
	}
	return ComputeLeaderboard(doctors), nil
}

// Demographics bins the filtered patient set by age band, gender and city.
func (s *ReportingService) Demographics(hospitalID int, r daterange.Range) (models.Demographics, error) {
	query := "SELECT age, gender, city FROM patients WHERE hospital_id = ? AND created_on BETWEEN ? AND ?"
	rows, err := s.DB.Query(query, hospitalID, r.Start, r.End)
	if err != nil {
		return models.Demographics{}, err
	}
	defer rows.Close()

	facts := []DemographicFact{}
	for rows.Next() {
		var f DemographicFact
		if err := rows.Scan(&f.Age, &f.Gender, &f.City); err != nil {
			return models.Demographics{}, err
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return models.Demographics{}, err
	}
	return ComputeDemographics(facts), nil
}
