package middleware

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"membership-hub/internal/adapters/persistence/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// IPRestriction gates every request on the claimed member's IP allow-list.
//
// X-Member-Id is caller-asserted and NOT authenticated: a missing,
// unparseable or unknown id lets the request through untouched (fail-open).
// Spoofing the header therefore bypasses the allow-list entirely. This is a
// known weakness of the contract, kept for compatibility with existing
// clients; do not change it to an authenticated identity without changing
// the callers first.
func IPRestriction(memberRepo repositories.MemberRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberHeader := c.Get("X-Member-Id")
		if memberHeader == "" {
			return c.Next()
		}

		id, err := strconv.ParseUint(memberHeader, 10, 64)
		if err != nil {
			// Invalid member ID, continue with normal flow
			return c.Next()
		}

		member, err := memberRepo.GetByID(c.Context(), uint(id))
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("⚠️ IP restriction lookup error for member %d: %v", id, err)
			}
			return c.Next()
		}

		// Empty allow-list means unrestricted
		if len(member.IPWhitelist) == 0 {
			return c.Next()
		}

		clientIP := resolveClientIP(c)
		for _, allowed := range member.IPWhitelist {
			// Exact string match only; no CIDR, no IPv6 normalization
			if allowed == "*" || allowed == clientIP {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).SendString("IP address not allowed")
	}
}

// resolveClientIP picks the caller address: X-Forwarded-For first, then
// X-Real-IP, then the transport peer. A literal "unknown" (any case) counts
// as absent. Proxy chains put the original client first in X-Forwarded-For,
// so only the first comma-separated token is used.
func resolveClientIP(c *fiber.Ctx) string {
	ip := c.Get("X-Forwarded-For")
	if ip == "" || strings.EqualFold(ip, "unknown") {
		ip = c.Get("X-Real-IP")
	}
	if ip == "" || strings.EqualFold(ip, "unknown") {
		ip = c.IP()
	}

	if strings.Contains(ip, ",") {
		ip = strings.TrimSpace(strings.Split(ip, ",")[0])
	}

	return ip
}
