package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ophthalmoai/saas-backend/internal/common/middlewares"
	"github.com/ophthalmoai/saas-backend/internal/patients/models"
	"github.com/ophthalmoai/saas-backend/internal/patients/services"
	"github.com/ophthalmoai/saas-backend/ws"
)

type PatientController struct {
	Service *services.PatientService
	Lookups *services.LookupService
}

func NewPatientController(service *services.PatientService, lookups *services.LookupService) *PatientController {
	return &PatientController{Service: service, Lookups: lookups}
}

// hospitalScope pulls the hospital id from the token. Master has no hospital
// scope and therefore no patient pages.
func hospitalScope(c echo.Context) (int, bool) {
	claims := middlewares.ClaimsFromContext(c)
	if claims == nil || claims.HospitalID == nil {
		return 0, false
	}
	return *claims.HospitalID, true
}

func scopeRestricted(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]interface{}{
		"status":  http.StatusForbidden,
		"message": "Access Restricted",
		"data":    nil,
	})
}

func (pc *PatientController) Create(c echo.Context) error {
	hospitalID, ok := hospitalScope(c)
	if !ok {
		return scopeRestricted(c)
	}

	var req models.CreatePatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload",
			"data":    nil,
		})
	}

	patient, err := pc.Service.CreatePatient(req, hospitalID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIOLRequired),
			errors.Is(err, services.ErrInvalidVision),
			errors.Is(err, services.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"status":  http.StatusBadRequest,
				"message": err.Error(),
				"data":    nil,
			})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"status":  http.StatusInternalServerError,
				"message": "Failed to save patient: " + err.Error(),
				"data":    nil,
			})
		}
	}

	logrus.WithFields(logrus.Fields{"patient_id": patient.PatientID, "hospital_id": hospitalID}).Info("patient created")
	ws.HubInstance.BroadcastEvent("patient_created", hospitalID)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Patient Saved Successfully",
		"data":    patient,
	})
}

func (pc *PatientController) List(c echo.Context) error {
	hospitalID, ok := hospitalScope(c)
	if !ok {
		return scopeRestricted(c)
	}

	patients, err := pc.Service.ListPatients(hospitalID, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to list patients: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    patients,
	})
}

func (pc *PatientController) Convert(c echo.Context) error {
	hospitalID, ok := hospitalScope(c)
	if !ok {
		return scopeRestricted(c)
	}

	patientID := c.QueryParam("patient_id")
	if patientID == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "patient_id is required",
			"data":    nil,
		})
	}

	if err := pc.Service.ConvertPatient(patientID, hospitalID); err != nil {
		if errors.Is(err, services.ErrPatientNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": "Patient not found",
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to convert patient: " + err.Error(),
			"data":    nil,
		})
	}

	ws.HubInstance.BroadcastEvent("patient_converted", hospitalID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Patient Converted",
		"data":    nil,
	})
}

func (pc *PatientController) Pending(c echo.Context) error {
	hospitalID, ok := hospitalScope(c)
	if !ok {
		return scopeRestricted(c)
	}

	bucket := c.QueryParam("bucket")
	if bucket == "" {
		bucket = models.BucketAll
	}
	if !models.ValidBucket(bucket) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "unknown bucket: " + bucket,
			"data":    nil,
		})
	}

	summary, err := pc.Service.PendingPatients(hospitalID, bucket, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to load pending patients: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    summary,
	})
}

func (pc *PatientController) ExportRoster(c echo.Context) error {
	hospitalID, ok := hospitalScope(c)
	if !ok {
		return scopeRestricted(c)
	}

	patients, err := pc.Service.ListPatients(hospitalID, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to export patients: " + err.Error(),
			"data":    nil,
		})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="patients_export.csv"`)
	res.WriteHeader(http.StatusOK)
	return services.WriteRosterCSV(res, patients)
}

func (pc *PatientController) ExportPending(c echo.Context) error {
	hospitalID, ok := hospitalScope(c)
	if !ok {
		return scopeRestricted(c)
	}

	bucket := c.QueryParam("bucket")
	if bucket == "" {
		bucket = models.BucketAll
	}
	if !models.ValidBucket(bucket) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "unknown bucket: " + bucket,
			"data":    nil,
		})
	}

	summary, err := pc.Service.PendingPatients(hospitalID, bucket, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to export pending patients: " + err.Error(),
			"data":    nil,
		})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="pending_patients.csv"`)
	res.WriteHeader(http.StatusOK)
	return services.WritePendingCSV(res, summary.Patients)
}

func (pc *PatientController) Masterdata(c echo.Context) error {
	hospitalID, ok := hospitalScope(c)
	if !ok {
		return scopeRestricted(c)
	}

	lookups, err := pc.Lookups.FormLookups(hospitalID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to load master data: " + err.Error(),
			"data":    nil,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    lookups,
	})
}
