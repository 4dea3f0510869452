package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ophthalmoai/saas-backend/internal/auth/services"
	"github.com/ophthalmoai/saas-backend/internal/common/middlewares"
	"github.com/ophthalmoai/saas-backend/pkg/utils"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload",
			"data":    nil,
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Username and Password are required",
			"data":    nil,
		})
	}

	user, err := ac.Service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"status":  http.StatusUnauthorized,
				"message": "Invalid Credentials",
				"data":    nil,
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Login failed: " + err.Error(),
			"data":    nil,
		})
	}

	token, err := utils.GenerateJWTToken(user.ID, user.Username, user.Role, user.HospitalID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Failed to generate token: " + err.Error(),
			"data":    nil,
		})
	}

	logrus.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Info("login")

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Login successful",
		"data": map[string]interface{}{
			"id":          user.ID,
			"username":    user.Username,
			"role":        user.Role,
			"hospital_id": user.HospitalID,
			"token":       token,
			"menu":        MenuForRole(user.Role),
		},
	})
}

// Menu returns the pages the authenticated role may open.
func (ac *AuthController) Menu(c echo.Context) error {
	claims := middlewares.ClaimsFromContext(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    MenuForRole(claims.Role),
	})
}

// MenuForRole mirrors the sidebar of the dashboard frontend: master only
// provisions tenants, hospital_admin sees every report, staff gets the
// day-to-day subset.
func MenuForRole(role string) []string {
	switch role {
	case utils.RoleMaster:
		return []string{"Dashboard", "Master Control"}
	case utils.RoleHospitalAdmin:
		return []string{"Dashboard", "Patients", "Daily Reminders", "Conversion", "Pending", "Revenue", "Doctors", "Demographics"}
	default:
		return []string{"Dashboard", "Patients", "Daily Reminders", "Pending", "Doctors"}
	}
}
