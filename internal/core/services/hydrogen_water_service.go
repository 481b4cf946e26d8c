package services

import (
	"context"
	"fmt"
	"log"
)

// HydrogenWaterService forwards usage events to the external hydrogen
// water dispenser control service
type HydrogenWaterService struct {
	deviceClient
}

// NewHydrogenWaterService creates a new hydrogen water service
func NewHydrogenWaterService(baseURL string) *HydrogenWaterService {
	return &HydrogenWaterService{deviceClient: newDeviceClient(baseURL)}
}

// StartUsage starts dispensing for a member on a device
func (s *HydrogenWaterService) StartUsage(ctx context.Context, memberID, deviceID uint, amount int) (map[string]interface{}, error) {
	request := map[string]interface{}{
		"memberId": memberID,
		"deviceId": deviceID,
		"amount":   amount,
		"action":   "start",
	}

	result, err := s.postJSON(ctx, "/usage/start", request)
	if err != nil {
		return nil, fmt.Errorf("start hydrogen water usage: %w", err)
	}
	return result, nil
}

// EndUsage ends dispensing for a member on a device
func (s *HydrogenWaterService) EndUsage(ctx context.Context, memberID, deviceID uint) (map[string]interface{}, error) {
	request := map[string]interface{}{
		"memberId": memberID,
		"deviceId": deviceID,
		"action":   "end",
	}

	result, err := s.postJSON(ctx, "/usage/end", request)
	if err != nil {
		return nil, fmt.Errorf("end hydrogen water usage: %w", err)
	}
	return result, nil
}

// GetUsageHistory fetches a member's dispensing history.
// History is best-effort: failures degrade to an empty result.
func (s *HydrogenWaterService) GetUsageHistory(ctx context.Context, memberID uint) map[string]interface{} {
	result, err := s.getJSON(ctx, fmt.Sprintf("/history/%d", memberID))
	if err != nil {
		log.Printf("⚠️ Hydrogen water history error: %v", err)
		return map[string]interface{}{}
	}
	return result
}
