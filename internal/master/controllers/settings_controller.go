package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ophthalmoai/saas-backend/internal/common/middlewares"
	"github.com/ophthalmoai/saas-backend/internal/master/services"
	"github.com/ophthalmoai/saas-backend/pkg/utils"
	"github.com/ophthalmoai/saas-backend/ws"
)

// SettingsController manages hospital configuration and master-data lists.
// Routes carry RequireRole(master, hospital_admin).
type SettingsController struct {
	Service *services.SettingsService
}

func NewSettingsController(service *services.SettingsService) *SettingsController {
	return &SettingsController{Service: service}
}

// settingsScope resolves which hospital the settings apply to: the admin's
// own scope, or an explicit hospital_id query parameter for master.
func settingsScope(c echo.Context) (int, bool) {
	claims := middlewares.ClaimsFromContext(c)
	if claims == nil {
		return 0, false
	}
	if claims.HospitalID != nil {
		return *claims.HospitalID, true
	}
	if claims.Role == utils.RoleMaster {
		if id, err := strconv.Atoi(c.QueryParam("hospital_id")); err == nil {
			return id, true
		}
	}
	return 0, false
}

func badScope(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"status":  http.StatusBadRequest,
		"message": "hospital scope could not be resolved",
		"data":    nil,
	})
}

func (sc *SettingsController) serviceError(c echo.Context, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrReferenced):
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"status":  http.StatusConflict,
			"message": "Cannot delete: " + err.Error(),
			"data":    nil,
		})
	case errors.Is(err, services.ErrHospitalNotFound):
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"status":  http.StatusNotFound,
			"message": "Hospital not found",
			"data":    nil,
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": action + ": " + err.Error(),
			"data":    nil,
		})
	}
}

func (sc *SettingsController) GetHospital(c echo.Context) error {
	hospitalID, ok := settingsScope(c)
	if !ok {
		return badScope(c)
	}
	hospital, err := sc.Service.GetHospital(hospitalID)
	if err != nil {
		return sc.serviceError(c, "Failed to load hospital", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    hospital,
	})
}

type UpdateHospitalRequest struct {
	Name         string `json:"name"`
	Subscription string `json:"subscription"`
}

func (sc *SettingsController) UpdateHospital(c echo.Context) error {
	hospitalID, ok := settingsScope(c)
	if !ok {
		return badScope(c)
	}
	var req UpdateHospitalRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Hospital name is required",
			"data":    nil,
		})
	}
	if err := sc.Service.UpdateHospital(hospitalID, req.Name, req.Subscription); err != nil {
		return sc.serviceError(c, "Failed to update hospital", err)
	}
	ws.HubInstance.BroadcastEvent("hospital_updated", hospitalID)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Hospital Settings Updated",
		"data":    nil,
	})
}

type addNameRequest struct {
	Name string `json:"name"`
}

// listHandler/addHandler/deleteHandler factor the four reference lists into
// the same request flow with different service calls.

func (sc *SettingsController) listHandler(c echo.Context, load func(hospitalID int) (interface{}, error)) error {
	hospitalID, ok := settingsScope(c)
	if !ok {
		return badScope(c)
	}
	items, err := load(hospitalID)
	if err != nil {
		return sc.serviceError(c, "Failed to list", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    items,
	})
}

func (sc *SettingsController) addHandler(c echo.Context, event string, add func(name string, hospitalID int) error) error {
	hospitalID, ok := settingsScope(c)
	if !ok {
		return badScope(c)
	}
	var req addNameRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "name is required",
			"data":    nil,
		})
	}
	if err := add(req.Name, hospitalID); err != nil {
		return sc.serviceError(c, "Failed to add", err)
	}
	ws.HubInstance.BroadcastEvent(event, hospitalID)
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Added",
		"data":    nil,
	})
}

func (sc *SettingsController) deleteHandler(c echo.Context, event string, del func(id, hospitalID int) error) error {
	hospitalID, ok := settingsScope(c)
	if !ok {
		return badScope(c)
	}
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "invalid id",
			"data":    nil,
		})
	}
	if err := del(id, hospitalID); err != nil {
		return sc.serviceError(c, "Failed to delete", err)
	}
	ws.HubInstance.BroadcastEvent(event, hospitalID)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Deleted",
		"data":    nil,
	})
}

func (sc *SettingsController) ListDoctors(c echo.Context) error {
	return sc.listHandler(c, func(hospitalID int) (interface{}, error) {
		return sc.Service.ListDoctors(hospitalID)
	})
}

func (sc *SettingsController) AddDoctor(c echo.Context) error {
	return sc.addHandler(c, "doctors_changed", sc.Service.AddDoctor)
}

func (sc *SettingsController) DeleteDoctor(c echo.Context) error {
	return sc.deleteHandler(c, "doctors_changed", sc.Service.DeleteDoctor)
}

func (sc *SettingsController) ListCounsellors(c echo.Context) error {
	return sc.listHandler(c, func(hospitalID int) (interface{}, error) {
		return sc.Service.ListCounsellors(hospitalID)
	})
}

func (sc *SettingsController) AddCounsellor(c echo.Context) error {
	return sc.addHandler(c, "counsellors_changed", sc.Service.AddCounsellor)
}

func (sc *SettingsController) DeleteCounsellor(c echo.Context) error {
	return sc.deleteHandler(c, "counsellors_changed", sc.Service.DeleteCounsellor)
}

func (sc *SettingsController) ListProcedures(c echo.Context) error {
	return sc.listHandler(c, func(int) (interface{}, error) {
		return sc.Service.ListProcedures()
	})
}

func (sc *SettingsController) AddProcedure(c echo.Context) error {
	return sc.addHandler(c, "procedures_changed", func(name string, _ int) error {
		return sc.Service.AddProcedure(name)
	})
}

func (sc *SettingsController) DeleteProcedure(c echo.Context) error {
	return sc.deleteHandler(c, "procedures_changed", func(id, _ int) error {
		return sc.Service.DeleteProcedure(id)
	})
}

func (sc *SettingsController) ListIOLTypes(c echo.Context) error {
	return sc.listHandler(c, func(int) (interface{}, error) {
		return sc.Service.ListIOLTypes()
	})
}

func (sc *SettingsController) AddIOLType(c echo.Context) error {
	return sc.addHandler(c, "iol_types_changed", func(name string, _ int) error {
		return sc.Service.AddIOLType(name)
	})
}

func (sc *SettingsController) DeleteIOLType(c echo.Context) error {
	return sc.deleteHandler(c, "iol_types_changed", func(id, _ int) error {
		return sc.Service.DeleteIOLType(id)
	})
}
