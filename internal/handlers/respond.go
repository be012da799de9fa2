package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/property-management-api/internal/constants"
	apierrors "github.com/yukikurage/property-management-api/internal/errors"
	"github.com/yukikurage/property-management-api/internal/middleware"
	"github.com/yukikurage/property-management-api/internal/services"
	"go.uber.org/zap"
)

// respondError maps service errors onto the shared API error responses.
// Unrecognised errors are logged and reported as 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var activeTenants *services.ActiveTenantsError

	switch {
	case errors.Is(err, services.ErrMissingFields):
		apierrors.MissingField(c, "")
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidUserType),
		errors.Is(err, services.ErrInvalidTotalUnits),
		errors.Is(err, services.ErrInvalidRentAmount),
		errors.Is(err, services.ErrRentNotPositive),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidMaintenanceStatus):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "Invalid credentials")

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOwnerNotFound),
		errors.Is(err, services.ErrPropertyNotFound),
		errors.Is(err, services.ErrTenantNotFound),
		errors.Is(err, services.ErrCodeNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrMaintenanceRequestNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrEmailTaken):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrUnitOccupied):
		apierrors.ConflictWithCode(c, apierrors.ErrCodeUnitOccupied, err.Error())
	case errors.Is(err, services.ErrPropertyFull),
		errors.Is(err, services.ErrPaymentAlreadyCompleted):
		apierrors.Conflict(c, err.Error())

	case errors.Is(err, services.ErrCodeExpired):
		apierrors.BusinessRule(c, apierrors.ErrCodeCodeExpired, err.Error(), gin.H{"expired": true})
	case errors.Is(err, services.ErrCodeAlreadyUsed):
		apierrors.BusinessRule(c, apierrors.ErrCodeCodeAlreadyUsed, err.Error(), gin.H{"used": true})
	case errors.As(err, &activeTenants):
		apierrors.BusinessRule(c, apierrors.ErrCodeHasActiveTenants, services.ErrHasActiveTenants.Error(), gin.H{
			"tenant_count": activeTenants.Count,
			"reason":       activeTenants.Error(),
		})

	case errors.Is(err, services.ErrAIUnavailable),
		errors.Is(err, services.ErrDraftingFailed):
		apierrors.ServiceUnavailable(c, err.Error())

	default:
		log.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		if gin.Mode() == gin.ReleaseMode {
			apierrors.InternalError(c, "")
			return
		}
		apierrors.InternalErrorWithDetails(c, "Internal server error", gin.H{"cause": err.Error()})
	}
}

// bindJSON decodes the body into obj. Missing required fields produce
// MISSING_FIELD, any other decoding problem INVALID_INPUT.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		missing := make([]string, 0, len(verrs))
		invalid := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
			} else {
				invalid = append(invalid, fe.Field())
			}
		}
		if len(invalid) == 0 {
			apierrors.MissingField(c, "Missing required fields: "+strings.Join(missing, ", "))
			return false
		}
		apierrors.BadRequest(c, "Invalid fields: "+strings.Join(invalid, ", "))
		return false
	}

	apierrors.BadRequest(c, "Invalid request body")
	return false
}

// requireQuery returns a non-blank query parameter or writes a 400.
func requireQuery(c *gin.Context, key, message string) (string, bool) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		apierrors.MissingField(c, message)
		return "", false
	}
	return value, true
}

func parseID(c *gin.Context, raw, message string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, message)
		return 0, false
	}
	return id, true
}

func created(c *gin.Context, body gin.H) {
	c.JSON(http.StatusCreated, body)
}
