package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"membership-hub/internal/adapters/persistence/models"
	"membership-hub/internal/adapters/persistence/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupFilterApp(t *testing.T) (*fiber.App, repositories.MemberRepository) {
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

	repo := repositories.NewMemberRepository(db)

	app := fiber.New()
	app.Use(IPRestriction(repo))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	return app, repo
}

func createFilterMember(t *testing.T, repo repositories.MemberRepository, whitelist []string) *models.Member {
	t.Helper()

	member := &models.Member{
		MemberCode:     fmt.Sprintf("MEM-TEST-%d", time.Now().UnixNano()),
		FirstName:      "Taro",
		LastName:       "Yamada",
		Email:          fmt.Sprintf("filter-%d@example.com", time.Now().UnixNano()),
		Status:         models.MemberStatusActive,
		MemberType:     "REGULAR",
		EnrollmentDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		IPWhitelist:    whitelist,
	}
	require.NoError(t, repo.Create(context.Background(), member))
	return member
}

func TestIPRestrictionNoHeaderPasses(t *testing.T) {
	app, _ := setupFilterApp(t)

	req := httptest.NewRequest("GET", "/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIPRestrictionNonNumericHeaderPasses(t *testing.T) {
	app, _ := setupFilterApp(t)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", "not-a-number")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIPRestrictionUnknownMemberPasses(t *testing.T) {
	app, _ := setupFilterApp(t)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", "99999")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIPRestrictionEmptyWhitelistPasses(t *testing.T) {
	app, repo := setupFilterApp(t)
	member := createFilterMember(t, repo, nil)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(member.ID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIPRestrictionBlocksNonMatchingIP(t *testing.T) {
	app, repo := setupFilterApp(t)
	member := createFilterMember(t, repo, []string{"203.0.113.10"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(member.ID))
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "IP address not allowed", string(body))
}

func TestIPRestrictionAllowsExactMatch(t *testing.T) {
	app, repo := setupFilterApp(t)
	member := createFilterMember(t, repo, []string{"203.0.113.10"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(member.ID))
	req.Header.Set("X-Forwarded-For", "203.0.113.10")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIPRestrictionWildcardAllowsAnyIP(t *testing.T) {
	app, repo := setupFilterApp(t)
	member := createFilterMember(t, repo, []string{"*"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(member.ID))
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIPRestrictionUnknownForwardedForFallsBackToRealIP(t *testing.T) {
	app, repo := setupFilterApp(t)
	member := createFilterMember(t, repo, []string{"203.0.113.10"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(member.ID))
	req.Header.Set("X-Forwarded-For", "UNKNOWN")
	req.Header.Set("X-Real-IP", "203.0.113.10")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestIPRestrictionUsesFirstForwardedForEntry(t *testing.T) {
	app, repo := setupFilterApp(t)
	member := createFilterMember(t, repo, []string{"203.0.113.10"})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(member.ID))
	req.Header.Set("X-Forwarded-For", "203.0.113.10, 10.0.0.1, 10.0.0.2")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A proxy hop in the allow-list does not count
	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(member.ID))
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 203.0.113.10")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestIPRestrictionPeerIPWhenNoHeaders(t *testing.T) {
	app, repo := setupFilterApp(t)
	member := createFilterMember(t, repo, []string{"203.0.113.10"})

	// No forwarding headers: the transport peer address is compared, which
	// never matches a routable allow-list entry in tests
	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Member-Id", fmt.Sprint(member.ID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
