package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"membership-hub/internal/adapters/http/routes"
	"membership-hub/internal/adapters/persistence/models"
	"membership-hub/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "8080",
		Devices: config.DevicesConfig{
			GolfAPIURL:     "http://localhost:9001",
			HydrogenAPIURL: "http://localhost:9002",
		},
	}

	app := fiber.New()
	routes.Setup(app, db, cfg)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func registerMember(t *testing.T, app *fiber.App, email string) map[string]interface{} {
	t.Helper()

	status, body := postJSON(t, app, "/api/members", map[string]interface{}{
		"first_name": "Taro",
		"last_name":  "Yamada",
		"email":      email,
	})
	require.Equal(t, fiber.StatusCreated, status)

	member := body["data"].(map[string]interface{})["member"].(map[string]interface{})
	return member
}

func TestRegisterMemberDefaults(t *testing.T) {
	app := setupApp(t)

	member := registerMember(t, app, "register@example.com")

	assert.Regexp(t, `^MEM\d{13}[0-9A-F]{8}$`, member["member_code"])
	assert.Equal(t, "ACTIVE", member["status"])
	assert.Equal(t, "REGULAR", member["member_type"])

	enrollment, ok := member["enrollment_date"].(string)
	require.True(t, ok)
	assert.Contains(t, enrollment, time.Now().Format("2006-01-02"))
}

func TestRegisterMemberValidation(t *testing.T) {
	app := setupApp(t)

	status, body := postJSON(t, app, "/api/members", map[string]interface{}{
		"first_name": "Taro",
		"email":      "not-an-email",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestRegisterMemberDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	registerMember(t, app, "dup@example.com")

	status, _ := postJSON(t, app, "/api/members", map[string]interface{}{
		"first_name": "Jiro",
		"last_name":  "Suzuki",
		"email":      "dup@example.com",
	})
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestGetMemberByIDAndCode(t *testing.T) {
	app := setupApp(t)

	created := registerMember(t, app, "get@example.com")
	id := int(created["id"].(float64))
	code := created["member_code"].(string)

	status, body := getJSON(t, app, fmt.Sprintf("/api/members/%d", id))
	assert.Equal(t, fiber.StatusOK, status)
	member := body["data"].(map[string]interface{})["member"].(map[string]interface{})
	assert.Equal(t, "get@example.com", member["email"])

	status, _ = getJSON(t, app, "/api/members/code/"+code)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = getJSON(t, app, "/api/members/99999")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = getJSON(t, app, "/api/members/code/MEM-MISSING")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestListMembersPaginated(t *testing.T) {
	app := setupApp(t)

	for i := 0; i < 3; i++ {
		registerMember(t, app, fmt.Sprintf("list%d@example.com", i))
	}

	status, body := getJSON(t, app, "/api/members?page=1&limit=2")
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	meta := data["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["total"])
	assert.Equal(t, float64(2), meta["total_pages"])
	assert.Equal(t, true, meta["has_next"])
	assert.Len(t, data["data"].([]interface{}), 2)
}

func TestUpdateMember(t *testing.T) {
	app := setupApp(t)

	created := registerMember(t, app, "update@example.com")
	id := int(created["id"].(float64))

	body, err := json.Marshal(map[string]interface{}{
		"first_name": "Jiro",
		"last_name":  "Suzuki",
		"email":      "updated@example.com",
		"phone":      "090-1111-2222",
		"address":    "Osaka",
		"status":     "INACTIVE",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/members/%d", id), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	member := decoded["data"].(map[string]interface{})["member"].(map[string]interface{})
	assert.Equal(t, "updated@example.com", member["email"])
	assert.Equal(t, "INACTIVE", member["status"])
	assert.Equal(t, created["member_code"], member["member_code"])
}

func TestDeleteMember(t *testing.T) {
	app := setupApp(t)

	created := registerMember(t, app, "delete@example.com")
	id := int(created["id"].(float64))

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/members/%d", id), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	status, _ := getJSON(t, app, fmt.Sprintf("/api/members/%d", id))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestIssueAndListMemberCards(t *testing.T) {
	app := setupApp(t)

	created := registerMember(t, app, "cards@example.com")
	id := int(created["id"].(float64))

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/members/%d/cards?cardType=PREMIUM", id), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	card := decoded["data"].(map[string]interface{})["card"].(map[string]interface{})
	assert.Regexp(t, `^CARD\d{13}$`, card["card_number"])
	assert.Equal(t, "PREMIUM", card["card_type"])
	assert.Equal(t, "ACTIVE", card["status"])

	status, body := getJSON(t, app, fmt.Sprintf("/api/members/%d/cards", id))
	require.Equal(t, fiber.StatusOK, status)
	cards := body["data"].(map[string]interface{})["cards"].([]interface{})
	assert.Len(t, cards, 1)
}

func TestIssueCardUnknownMember(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("POST", "/api/members/99999/cards", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestIPRestrictionAppliesToMemberRoutes(t *testing.T) {
	app := setupApp(t)

	status, body := postJSON(t, app, "/api/members", map[string]interface{}{
		"first_name":   "Taro",
		"last_name":    "Yamada",
		"email":        "restricted@example.com",
		"ip_whitelist": []string{"203.0.113.10"},
	})
	require.Equal(t, fiber.StatusCreated, status)
	member := body["data"].(map[string]interface{})["member"].(map[string]interface{})
	id := int(member["id"].(float64))

	// Claiming the restricted member from a foreign address is rejected
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/members/%d", id), nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(id))
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Same request from an allowed address goes through
	req = httptest.NewRequest("GET", fmt.Sprintf("/api/members/%d", id), nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(id))
	req.Header.Set("X-Forwarded-For", "203.0.113.10")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
