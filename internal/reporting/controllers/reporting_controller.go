package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ophthalmoai/saas-backend/internal/common/daterange"
	"github.com/ophthalmoai/saas-backend/internal/common/middlewares"
	"github.com/ophthalmoai/saas-backend/internal/reporting/services"
)

type ReportingController struct {
	Service *services.ReportingService
}

func NewReportingController(service *services.ReportingService) *ReportingController {
	return &ReportingController{Service: service}
}

// scopeAndRange resolves the hospital scope from the token and the reporting
// window from query parameters. ok is false when either fails; the response
// has already been written in that case.
func scopeAndRange(c echo.Context) (int, daterange.Range, bool) {
	claims := middlewares.ClaimsFromContext(c)
	if claims == nil || claims.HospitalID == nil {
		c.JSON(http.StatusForbidden, map[string]interface{}{
			"status":  http.StatusForbidden,
			"message": "Access Restricted",
			"data":    nil,
		})
		return 0, daterange.Range{}, false
	}

	r, err := daterange.Parse(
		c.QueryParam("preset"),
		c.QueryParam("start"),
		c.QueryParam("end"),
		time.Now(),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": err.Error(),
			"data":    nil,
		})
		return 0, daterange.Range{}, false
	}
	return *claims.HospitalID, r, true
}

func respond(c echo.Context, data interface{}, err error) error {
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to build report: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    data,
	})
}

func (rc *ReportingController) Dashboard(c echo.Context) error {
	hospitalID, r, ok := scopeAndRange(c)
	if !ok {
		return nil
	}
	data, err := rc.Service.Dashboard(hospitalID, r)
	return respond(c, data, err)
}

func (rc *ReportingController) Conversion(c echo.Context) error {
	hospitalID, r, ok := scopeAndRange(c)
	if !ok {
		return nil
	}
	data, err := rc.Service.ConversionByProcedure(hospitalID, r)
	return respond(c, data, err)
}

func (rc *ReportingController) Revenue(c echo.Context) error {
	hospitalID, r, ok := scopeAndRange(c)
	if !ok {
		return nil
	}
	data, err := rc.Service.Revenue(hospitalID, r)
	return respond(c, data, err)
}

func (rc *ReportingController) Doctors(c echo.Context) error {
	hospitalID, r, ok := scopeAndRange(c)
	if !ok {
		return nil
	}
	data, err := rc.Service.DoctorLeaderboard(hospitalID, r)
	return respond(c, data, err)
}

func (rc *ReportingController) Demographics(c echo.Context) error {
	hospitalID, r, ok := scopeAndRange(c)
	if !ok {
		return nil
	}
	data, err := rc.Service.Demographics(hospitalID, r)
	return respond(c, data, err)
}
