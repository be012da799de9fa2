package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/property-management-api/internal/constants"
	apierrors "github.com/yukikurage/property-management-api/internal/errors"
	"github.com/yukikurage/property-management-api/internal/middleware"
	"github.com/yukikurage/property-management-api/internal/models"
	"github.com/yukikurage/property-management-api/internal/services"
	"github.com/yukikurage/property-management-api/internal/testutil"
	"go.uber.org/zap"
)

// RouterTestSuite drives the full route table over HTTP.
type RouterTestSuite struct {
	suite.Suite
	env    *testutil.Env
	router *gin.Engine
}

func (suite *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.env = testutil.NewEnv(suite.T(), nil)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("test-secret"))))
	RegisterRoutes(r, NewHandlers(suite.env.DB, suite.env.Services, zap.NewNop()))
	suite.router = r
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (suite *RouterTestSuite) request(method, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RouterTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (suite *RouterTestSuite) assertAPIError(w *httptest.ResponseRecorder, status int, code string) map[string]interface{} {
	suite.Require().Equal(status, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(code, body["code"])
	suite.Equal(false, body["success"])
	return body
}

func (suite *RouterTestSuite) createUser(name, email string, userType models.UserType) *models.User {
	user, err := suite.env.Services.Auth.Signup(context.Background(), services.SignupInput{
		Name:     name,
		Email:    email,
		Password: "supersecret",
		UserType: userType,
	})
	suite.Require().NoError(err)
	return user
}

func (suite *RouterTestSuite) createProperty(ownerEmail string, units int) uint64 {
	w := suite.request(http.MethodPost, "/api/properties/add", map[string]interface{}{
		"name":        "Maple Court",
		"address":     "1 Maple Street",
		"total_units": units,
		"rent_amount": 1000,
		"ownerEmail":  ownerEmail,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	property := suite.decode(w)["property"].(map[string]interface{})
	return uint64(property["id"].(float64))
}

func (suite *RouterTestSuite) generateCode(propertyID uint64, unit string) string {
	w := suite.request(http.MethodPost, "/api/properties/generate-code", map[string]interface{}{
		"propertyId": propertyID,
		"unit":       unit,
		"rentAmount": 1000,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	return suite.decode(w)["code"].(string)
}

func (suite *RouterTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(w.Header().Get(constants.HeaderRequestID))
}

func (suite *RouterTestSuite) TestUnknownRoutes() {
	w := suite.request(http.MethodGet, "/api/does-not-exist", nil)
	body := suite.assertAPIError(w, http.StatusNotImplemented, apierrors.ErrCodeNotImplemented)
	details := body["details"].(map[string]interface{})
	suite.Equal("/api/does-not-exist", details["endpoint"])

	w = suite.request(http.MethodGet, "/elsewhere", nil)
	suite.assertAPIError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func (suite *RouterTestSuite) TestSessionLifecycle() {
	suite.createUser("Olivia Owner", "olivia@example.com", models.UserTypeOwner)

	w := suite.request(http.MethodGet, "/api/auth/me", nil)
	suite.assertAPIError(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)

	w = suite.request(http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "olivia@example.com",
		"password": "supersecret",
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	w = suite.request(http.MethodGet, "/api/auth/me", nil, cookies...)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	user := suite.decode(w)["user"].(map[string]interface{})
	suite.Equal("olivia@example.com", user["email"])
	suite.Equal("owner", user["user_type"])

	w = suite.request(http.MethodPost, "/api/auth/logout", nil, cookies...)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestConnectionCodeFlow() {
	suite.createUser("Olivia Owner", "olivia@example.com", models.UserTypeOwner)
	suite.createUser("Tom Tenant", "tom@example.com", models.UserTypeTenant)
	propertyID := suite.createProperty("olivia@example.com", 3)
	code := suite.generateCode(propertyID, "2A")
	suite.Len(code, constants.ConnectionCodeLength)

	w := suite.request(http.MethodGet, "/api/tenants/validate-code?connectionCode="+code, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal(true, body["valid"])
	suite.Equal("2A", body["property"].(map[string]interface{})["unit"])

	connect := map[string]string{"code": code, "tenantEmail": "tom@example.com"}
	w = suite.request(http.MethodPost, "/api/tenants/connect-with-code", connect)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodPost, "/api/tenants/connect-with-code", connect)
	body = suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeCodeAlreadyUsed)
	suite.Equal(true, body["details"].(map[string]interface{})["used"])

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/properties/occupied-units?propertyId=%d", propertyID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal([]interface{}{"2A"}, suite.decode(w)["occupied_units"])

	w = suite.request(http.MethodGet, "/api/tenants/dashboard?tenantEmail=tom@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	tenant := suite.decode(w)["tenant"].(map[string]interface{})
	suite.Equal(float64(30), tenant["days_until_due"])
	suite.Equal("pending", tenant["rent_status"])

	suite.env.Clock.Advance(8 * 24 * time.Hour)
	w = suite.request(http.MethodGet, "/api/tenants/validate-code?connectionCode="+code, nil)
	body = suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeCodeExpired)
	suite.Equal(true, body["details"].(map[string]interface{})["expired"])
}

func (suite *RouterTestSuite) TestValidationErrors() {
	w := suite.request(http.MethodPost, "/api/properties/generate-code", map[string]interface{}{
		"propertyId": 1,
		"unit":       "1A",
	})
	suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)

	w = suite.request(http.MethodGet, "/api/tenants/validate-code", nil)
	suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)

	w = suite.request(http.MethodGet, "/api/tenants/validate-code?connectionCode=NOPE00", nil)
	suite.assertAPIError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)

	w = suite.request(http.MethodDelete, "/api/properties/remove/abc", nil)
	suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)

	w = suite.request(http.MethodGet, "/api/owners/dashboard", nil)
	suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)
}

func (suite *RouterTestSuite) TestTenantPlacementConflicts() {
	suite.createUser("Olivia Owner", "olivia@example.com", models.UserTypeOwner)
	suite.createUser("Tom Tenant", "tom@example.com", models.UserTypeTenant)
	suite.createUser("Tina Tenant", "tina@example.com", models.UserTypeTenant)
	propertyID := suite.createProperty("olivia@example.com", 1)

	add := func(email, unit string) *httptest.ResponseRecorder {
		return suite.request(http.MethodPost, "/api/tenants/add", map[string]interface{}{
			"propertyId":  propertyID,
			"tenantEmail": email,
			"unit":        unit,
			"rentAmount":  900,
		})
	}

	w := add("tom@example.com", "1A")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	tenantID := uint64(suite.decode(w)["tenant"].(map[string]interface{})["id"].(float64))

	suite.assertAPIError(add("tina@example.com", "1A"), http.StatusConflict, apierrors.ErrCodeUnitOccupied)
	suite.assertAPIError(add("tina@example.com", "1B"), http.StatusConflict, apierrors.ErrCodeConflict)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/properties/remove/%d", propertyID), nil)
	body := suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeHasActiveTenants)
	suite.Equal(float64(1), body["details"].(map[string]interface{})["tenant_count"])

	w = suite.request(http.MethodPost, "/api/tenants/remove", map[string]interface{}{"tenantId": tenantID})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/properties/remove/%d", propertyID), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *RouterTestSuite) TestPaymentApproval() {
	suite.createUser("Olivia Owner", "olivia@example.com", models.UserTypeOwner)
	suite.createUser("Tom Tenant", "tom@example.com", models.UserTypeTenant)
	propertyID := suite.createProperty("olivia@example.com", 2)
	code := suite.generateCode(propertyID, "1A")
	w := suite.request(http.MethodPost, "/api/tenants/connect-with-code", map[string]string{"code": code, "tenantEmail": "tom@example.com"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/payments/submit", map[string]interface{}{
		"tenantEmail":   "tom@example.com",
		"amount":        1000,
		"paymentMethod": "card",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	payment := suite.decode(w)["payment"].(map[string]interface{})
	suite.Equal("pending", payment["status"])
	suite.Equal("1000", payment["amount"])
	paymentID := uint64(payment["id"].(float64))

	w = suite.request(http.MethodGet, "/api/owners/dashboard?ownerEmail=olivia@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	stats := suite.decode(w)["stats"].(map[string]interface{})
	suite.Equal(float64(1), stats["pending_payments"])
	suite.Equal("1000", stats["total_rent"])

	approve := map[string]interface{}{"paymentId": paymentID}
	w = suite.request(http.MethodPost, "/api/payments/approve", approve)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodPost, "/api/payments/approve", approve)
	suite.assertAPIError(w, http.StatusConflict, apierrors.ErrCodeConflict)

	w = suite.request(http.MethodGet, "/api/tenants/dashboard?tenantEmail=tom@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("paid", suite.decode(w)["tenant"].(map[string]interface{})["rent_status"])

	w = suite.request(http.MethodPost, "/api/payments/record", map[string]interface{}{
		"tenantEmail": "tom@example.com",
		"amount":      -5,
	})
	suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

func (suite *RouterTestSuite) TestMaintenanceAndNotifications() {
	suite.createUser("Olivia Owner", "olivia@example.com", models.UserTypeOwner)
	suite.createUser("Tom Tenant", "tom@example.com", models.UserTypeTenant)
	propertyID := suite.createProperty("olivia@example.com", 2)
	code := suite.generateCode(propertyID, "1A")
	w := suite.request(http.MethodPost, "/api/tenants/connect-with-code", map[string]string{"code": code, "tenantEmail": "tom@example.com"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/maintenance/submit", map[string]string{
		"tenantEmail": "tom@example.com",
		"title":       "Broken heater",
		"description": "No heat in the bedroom",
		"priority":    "high",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	requestID := uint64(suite.decode(w)["request"].(map[string]interface{})["id"].(float64))

	w = suite.request(http.MethodPatch, "/api/maintenance/update", map[string]interface{}{
		"requestId": requestID,
		"status":    "closed",
	})
	suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)

	w = suite.request(http.MethodPatch, "/api/maintenance/update", map[string]interface{}{
		"requestId": requestID,
		"status":    "completed",
		"response":  "Replaced the thermostat",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	request := suite.decode(w)["request"].(map[string]interface{})
	suite.NotNil(request["completed_at"])

	w = suite.request(http.MethodGet, "/api/maintenance/owner?ownerEmail=olivia@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	requests := suite.decode(w)["requests"].([]interface{})
	suite.Require().Len(requests, 1)
	suite.Equal("1A", requests[0].(map[string]interface{})["unit_number"])

	w = suite.request(http.MethodGet, "/api/notifications/owner?ownerEmail=olivia@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal(float64(1), body["unread_count"])
	notification := body["notifications"].([]interface{})[0].(map[string]interface{})

	w = suite.request(http.MethodPost, "/api/notifications/mark-read", map[string]interface{}{"notificationId": notification["id"]})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodGet, "/api/notifications/owner?ownerEmail=olivia@example.com", nil)
	suite.Equal(float64(0), suite.decode(w)["unread_count"])
}

func (suite *RouterTestSuite) TestReminders() {
	suite.createUser("Olivia Owner", "olivia@example.com", models.UserTypeOwner)
	suite.createUser("Tom Tenant", "tom@example.com", models.UserTypeTenant)
	propertyID := suite.createProperty("olivia@example.com", 2)
	code := suite.generateCode(propertyID, "1A")
	w := suite.request(http.MethodPost, "/api/tenants/connect-with-code", map[string]string{"code": code, "tenantEmail": "tom@example.com"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/tenants/list?ownerEmail=olivia@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	tenants := suite.decode(w)["tenants"].([]interface{})
	suite.Require().Len(tenants, 1)
	tenantID := tenants[0].(map[string]interface{})["id"]
	suite.Equal("Maple Court", tenants[0].(map[string]interface{})["property_name"])

	w = suite.request(http.MethodPost, "/api/reminders/send", map[string]interface{}{
		"tenantId":     tenantID,
		"message":      "Rent is due on the 1st",
		"reminderType": "rent",
		"dueDate":      "2025-04-01",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	reminder := suite.decode(w)["reminder"].(map[string]interface{})
	suite.Equal("rent", reminder["type"])

	w = suite.request(http.MethodPost, "/api/reminders/send", map[string]interface{}{
		"tenantId": tenantID,
		"message":  "Bad date",
		"dueDate":  "not-a-date",
	})
	suite.assertAPIError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)

	w = suite.request(http.MethodGet, "/api/notifications/tenant?tenantEmail=tom@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(float64(1), suite.decode(w)["unread_count"])

	w = suite.request(http.MethodPost, "/api/reminders/draft", map[string]interface{}{"tenantId": tenantID})
	suite.assertAPIError(w, http.StatusServiceUnavailable, apierrors.ErrCodeServiceUnavailable)

	w = suite.request(http.MethodGet, "/api/owners/dashboard?ownerEmail=olivia@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	upcoming := suite.decode(w)["upcoming_reminders"].([]interface{})
	assert.Len(suite.T(), upcoming, 1)
}

func (suite *RouterTestSuite) TestOwnerStats() {
	suite.createUser("Olivia Owner", "olivia@example.com", models.UserTypeOwner)
	suite.createProperty("olivia@example.com", 4)

	w := suite.request(http.MethodGet, "/api/owners/stats?ownerEmail=olivia@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	stats := suite.decode(w)["stats"].(map[string]interface{})
	suite.Equal(float64(4), stats["total_units"])
	suite.Equal(float64(0), stats["occupancy_rate"])

	w = suite.request(http.MethodGet, "/api/owners/dashboard?ownerEmail=ghost@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal(true, body["success"])
	suite.Equal([]interface{}{}, body["properties"])
}

func (suite *RouterTestSuite) TestPaymentHistoryPagination() {
	suite.createUser("Olivia Owner", "olivia@example.com", models.UserTypeOwner)
	suite.createUser("Tom Tenant", "tom@example.com", models.UserTypeTenant)
	propertyID := suite.createProperty("olivia@example.com", 2)
	code := suite.generateCode(propertyID, "1A")
	w := suite.request(http.MethodPost, "/api/tenants/connect-with-code", map[string]string{"code": code, "tenantEmail": "tom@example.com"})
	suite.Require().Equal(http.StatusOK, w.Code)

	for i := 0; i < 3; i++ {
		w = suite.request(http.MethodPost, "/api/payments/record", map[string]interface{}{
			"tenantEmail": "tom@example.com",
			"amount":      250,
		})
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	}

	w = suite.request(http.MethodGet, "/api/payments/history?tenantEmail=tom@example.com", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Len(body["payments"], 3)
	suite.Nil(body["pagination"])

	w = suite.request(http.MethodGet, "/api/payments/history?tenantEmail=tom@example.com&page=2&limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	body = suite.decode(w)
	suite.Len(body["payments"], 1)
	pagination := body["pagination"].(map[string]interface{})
	suite.Equal(float64(2), pagination["page"])
	suite.Equal(float64(3), pagination["total"])
}
