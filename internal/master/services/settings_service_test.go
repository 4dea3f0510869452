package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newSettingsMock(t *testing.T) (*SettingsService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSettingsService(db), mock
}

func TestDeleteDoctorReferenced(t *testing.T) {
	svc, mock := newSettingsMock(t)

	mock.ExpectQuery("SELECT name FROM doctors WHERE id = ? AND hospital_id = ?").
		WithArgs(4, 1).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Dr. Mehta"))
	mock.ExpectQuery("SELECT COUNT(*) FROM patients WHERE doctor = ? AND hospital_id = ?").
		WithArgs("Dr. Mehta", 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err := svc.DeleteDoctor(4, 1)
	if !errors.Is(err, ErrReferenced) {
		t.Fatalf("err = %v, want ErrReferenced", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDeleteDoctorUnreferenced(t *testing.T) {
	svc, mock := newSettingsMock(t)

	mock.ExpectQuery("SELECT name FROM doctors WHERE id = ? AND hospital_id = ?").
		WithArgs(4, 1).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Dr. Mehta"))
	mock.ExpectQuery("SELECT COUNT(*) FROM patients WHERE doctor = ? AND hospital_id = ?").
		WithArgs("Dr. Mehta", 1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM doctors WHERE id = ? AND hospital_id = ?").
		WithArgs(4, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.DeleteDoctor(4, 1); err != nil {
		t.Fatalf("DeleteDoctor: %v", err)
	}
}

func TestDeleteProcedureReferenced(t *testing.T) {
	svc, mock := newSettingsMock(t)

	mock.ExpectQuery("SELECT name FROM procedures WHERE id = ?").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Cataract"))
	mock.ExpectQuery("SELECT COUNT(*) FROM patients WHERE `procedure` = ?").
		WithArgs("Cataract").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	if err := svc.DeleteProcedure(2); !errors.Is(err, ErrReferenced) {
		t.Fatalf("err = %v, want ErrReferenced", err)
	}
}

func TestUpdateHospitalValidatesSubscription(t *testing.T) {
	svc, _ := newSettingsMock(t)
	if err := svc.UpdateHospital(1, "City Eye Care", "paused"); err == nil {
		t.Fatal("expected error for invalid subscription value")
	}
}
