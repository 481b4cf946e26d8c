package services

import (
	"context"
	"fmt"
	"log"
)

// GolfSimulatorService forwards session events to the external golf
// simulator control service. Pass-through only: no retries, no caching.
type GolfSimulatorService struct {
	deviceClient
}

// NewGolfSimulatorService creates a new golf simulator service
func NewGolfSimulatorService(baseURL string) *GolfSimulatorService {
	return &GolfSimulatorService{deviceClient: newDeviceClient(baseURL)}
}

// StartSession starts a simulator session for a member on a device
func (s *GolfSimulatorService) StartSession(ctx context.Context, memberID, deviceID uint) (map[string]interface{}, error) {
	request := map[string]interface{}{
		"memberId": memberID,
		"deviceId": deviceID,
		"action":   "start",
	}

	result, err := s.postJSON(ctx, "/sessions/start", request)
	if err != nil {
		return nil, fmt.Errorf("start golf simulator session: %w", err)
	}
	return result, nil
}

// EndSession ends a simulator session, forwarding the collected session data
func (s *GolfSimulatorService) EndSession(ctx context.Context, memberID, deviceID uint, sessionData map[string]interface{}) (map[string]interface{}, error) {
	request := map[string]interface{}{
		"memberId":    memberID,
		"deviceId":    deviceID,
		"action":      "end",
		"sessionData": sessionData,
	}

	result, err := s.postJSON(ctx, "/sessions/end", request)
	if err != nil {
		return nil, fmt.Errorf("end golf simulator session: %w", err)
	}
	return result, nil
}

// GetUsageHistory fetches a member's simulator history.
// History is best-effort: failures degrade to an empty result.
func (s *GolfSimulatorService) GetUsageHistory(ctx context.Context, memberID uint) map[string]interface{} {
	result, err := s.getJSON(ctx, fmt.Sprintf("/history/%d", memberID))
	if err != nil {
		log.Printf("⚠️ Golf simulator history error: %v", err)
		return map[string]interface{}{}
	}
	return result
}
