package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ophthalmoai/saas-backend/internal/master/services"
	"github.com/ophthalmoai/saas-backend/ws"
)

// MasterController is the tenant-provisioning control panel. Routes carry
// RequireRole(master).
type MasterController struct {
	Service *services.MasterService
}

func NewMasterController(service *services.MasterService) *MasterController {
	return &MasterController{Service: service}
}

type CreateHospitalRequest struct {
	Name         string `json:"name"`
	Subscription string `json:"subscription"`
}

func (mc *MasterController) CreateHospital(c echo.Context) error {
	var req CreateHospitalRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Hospital name is required",
			"data":    nil,
		})
	}

	hospital, err := mc.Service.CreateHospital(req.Name, req.Subscription)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to create hospital: " + err.Error(),
			"data":    nil,
		})
	}

	logrus.WithField("hospital", hospital.Name).Info("hospital created")

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Hospital Created",
		"data":    hospital,
	})
}

func (mc *MasterController) ListHospitals(c echo.Context) error {
	hospitals, err := mc.Service.ListHospitals()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to list hospitals: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    hospitals,
	})
}

func (mc *MasterController) ToggleSubscription(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid hospital id",
			"data":    nil,
		})
	}

	hospital, err := mc.Service.ToggleSubscription(id)
	if err != nil {
		if errors.Is(err, services.ErrHospitalNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": "Hospital not found",
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to toggle subscription: " + err.Error(),
			"data":    nil,
		})
	}

	ws.HubInstance.BroadcastEvent("hospital_updated", hospital.ID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Subscription updated",
		"data":    hospital,
	})
}

type CreateAdminRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	HospitalID int    `json:"hospital_id"`
}

func (mc *MasterController) CreateHospitalAdmin(c echo.Context) error {
	var req CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload",
			"data":    nil,
		})
	}
	if req.Username == "" || req.Password == "" || req.HospitalID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "username, password and hospital_id are required",
			"data":    nil,
		})
	}

	id, err := mc.Service.CreateHospitalAdmin(req.Username, req.Password, req.HospitalID)
	if err != nil {
		if errors.Is(err, services.ErrHospitalNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{
				"status":  http.StatusNotFound,
				"message": "Hospital not found",
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to create hospital admin: " + err.Error(),
			"data":    nil,
		})
	}

	logrus.WithFields(logrus.Fields{"username": req.Username, "hospital_id": req.HospitalID}).Info("hospital admin created")

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Hospital Admin Created",
		"data":    map[string]interface{}{"id": id},
	})
}
