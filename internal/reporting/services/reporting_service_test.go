package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ophthalmoai/saas-backend/internal/common/daterange"
)

func newMock(t *testing.T) (*ReportingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewReportingService(db), mock
}

func testRange(t *testing.T) daterange.Range {
	t.Helper()
	r, err := daterange.Parse(daterange.PresetMonth30, "", "", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return r
}

func TestDashboardHonorsDateFilter(t *testing.T) {
	svc, mock := newMock(t)
	r := testRange(t)

	mock.ExpectQuery("SELECT `procedure`, status, cost FROM patients WHERE hospital_id = ? AND created_on BETWEEN ? AND ?").
		WithArgs(7, r.Start, r.End).
		WillReturnRows(sqlmock.NewRows([]string{"procedure", "status", "cost"}).
			AddRow("Cataract", "Converted", 1000.0).
			AddRow("Lasik", "Pending", 500.0))

	d, err := svc.Dashboard(7, r)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.Total != 2 || d.ConversionRate != 50.0 {
		t.Errorf("total = %d rate = %v, want 2 / 50.0", d.Total, d.ConversionRate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConversionByProcedure(t *testing.T) {
	svc, mock := newMock(t)
	r := testRange(t)

	mock.ExpectQuery("SELECT `procedure`, COUNT(*) AS total, " +
		"SUM(CASE WHEN status = 'Converted' THEN 1 ELSE 0 END) AS converted, " +
		"SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END) AS pending " +
		"FROM patients WHERE hospital_id = ? AND created_on BETWEEN ? AND ? " +
		"GROUP BY `procedure` ORDER BY total DESC, `procedure` ASC").
		WithArgs(7, r.Start, r.End).
		WillReturnRows(sqlmock.NewRows([]string{"procedure", "total", "converted", "pending"}).
			AddRow("Cataract", 3, 2, 1).
			AddRow("Lasik", 3, 1, 2))

	result, err := svc.ConversionByProcedure(7, r)
	if err != nil {
		t.Fatalf("ConversionByProcedure: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("rows = %d, want 2", len(result))
	}
	if result[0].ConversionRate != 66.7 {
		t.Errorf("rate = %v, want 66.7 rounded to one decimal", result[0].ConversionRate)
	}
	if result[1].ConversionRate != 33.3 {
		t.Errorf("rate = %v, want 33.3", result[1].ConversionRate)
	}
}

func TestDoctorLeaderboardNullRevenue(t *testing.T) {
	svc, mock := newMock(t)
	r := testRange(t)

	mock.ExpectQuery("SELECT doctor, COUNT(*) AS total_cases, " +
		"SUM(CASE WHEN status = 'Converted' THEN 1 ELSE 0 END) AS converted, " +
		"COALESCE(SUM(cost), 0) AS revenue " +
		"FROM patients WHERE hospital_id = ? AND created_on BETWEEN ? AND ? " +
		"GROUP BY doctor").
		WithArgs(7, r.Start, r.End).
		WillReturnRows(sqlmock.NewRows([]string{"doctor", "total_cases", "converted", "revenue"}).
			AddRow("Dr. Mehta", 2, 2, 0.0))

	board, err := svc.DoctorLeaderboard(7, r)
	if err != nil {
		t.Fatalf("DoctorLeaderboard: %v", err)
	}
	if board.TopPerformer == nil || board.TopPerformer.Doctor != "Dr. Mehta" {
		t.Fatalf("top performer = %+v", board.TopPerformer)
	}
	if board.TopPerformer.Revenue != 0 {
		t.Errorf("revenue = %v, want 0 for NULL sum", board.TopPerformer.Revenue)
	}
}

func TestDashboardEmptyHospital(t *testing.T) {
	svc, mock := newMock(t)
	r := testRange(t)

	mock.ExpectQuery("SELECT `procedure`, status, cost FROM patients WHERE hospital_id = ? AND created_on BETWEEN ? AND ?").
		WithArgs(9, r.Start, r.End).
		WillReturnRows(sqlmock.NewRows([]string{"procedure", "status", "cost"}))

	d, err := svc.Dashboard(9, r)
	if err != nil {
		t.Fatalf("Dashboard on empty hospital: %v", err)
	}
	if d.Total != 0 || d.ConversionRate != 0 {
		t.Errorf("empty hospital should yield zeros, got %+v", d)
	}
}
