package handlers

import (
	"strconv"

	"membership-hub/internal/core/services"
	"membership-hub/internal/pkg/response"
	"membership-hub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// DeviceHandler handles external device endpoints (golf simulator,
// hydrogen water dispenser)
type DeviceHandler struct {
	golfService  *services.GolfSimulatorService
	waterService *services.HydrogenWaterService
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(golfService *services.GolfSimulatorService, waterService *services.HydrogenWaterService) *DeviceHandler {
	return &DeviceHandler{
		golfService:  golfService,
		waterService: waterService,
	}
}

// GolfSessionRequest represents a golf simulator session request body
type GolfSessionRequest struct {
	MemberID    uint                   `json:"member_id" validate:"required"`
	DeviceID    uint                   `json:"device_id" validate:"required"`
	SessionData map[string]interface{} `json:"session_data"`
}

// StartGolfSession handles starting a golf simulator session
// @Summary Start golf simulator session
// @Tags Devices
// @Accept json
// @Produce json
// @Param body body GolfSessionRequest true "Session data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/devices/golf/sessions/start [post]
func (h *DeviceHandler) StartGolfSession(c *fiber.Ctx) error {
	var req GolfSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := validation.ValidateStruct(&req); errs != nil {
		return response.BadRequest(c, validation.Format(errs))
	}

	result, err := h.golfService.StartSession(c.Context(), req.MemberID, req.DeviceID)
	if err != nil {
		return response.BadGateway(c, "Golf simulator is unavailable")
	}

	return response.Success(c, "Golf simulator session started", result)
}

// EndGolfSession handles ending a golf simulator session
// @Summary End golf simulator session
// @Tags Devices
// @Accept json
// @Produce json
// @Param body body GolfSessionRequest true "Session data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/devices/golf/sessions/end [post]
func (h *DeviceHandler) EndGolfSession(c *fiber.Ctx) error {
	var req GolfSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := validation.ValidateStruct(&req); errs != nil {
		return response.BadRequest(c, validation.Format(errs))
	}

	result, err := h.golfService.EndSession(c.Context(), req.MemberID, req.DeviceID, req.SessionData)
	if err != nil {
		return response.BadGateway(c, "Golf simulator is unavailable")
	}

	return response.Success(c, "Golf simulator session ended", result)
}

// GetGolfHistory handles fetching a member's golf simulator history
// @Summary Get golf simulator usage history
// @Tags Devices
// @Produce json
// @Param memberId path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/devices/golf/history/{memberId} [get]
func (h *DeviceHandler) GetGolfHistory(c *fiber.Ctx) error {
	memberID, err := strconv.ParseUint(c.Params("memberId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	history := h.golfService.GetUsageHistory(c.Context(), uint(memberID))
	return response.Success(c, "Golf simulator history retrieved", history)
}

// HydrogenWaterRequest represents a hydrogen water dispenser request body
type HydrogenWaterRequest struct {
	MemberID uint `json:"member_id" validate:"required"`
	DeviceID uint `json:"device_id" validate:"required"`
	Amount   int  `json:"amount" validate:"omitempty,min=1"`
}

// StartHydrogenWaterUsage handles starting hydrogen water dispensing
// @Summary Start hydrogen water dispensing
// @Tags Devices
// @Accept json
// @Produce json
// @Param body body HydrogenWaterRequest true "Usage data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/devices/hydrogen-water/usage/start [post]
func (h *DeviceHandler) StartHydrogenWaterUsage(c *fiber.Ctx) error {
	var req HydrogenWaterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := validation.ValidateStruct(&req); errs != nil {
		return response.BadRequest(c, validation.Format(errs))
	}

	result, err := h.waterService.StartUsage(c.Context(), req.MemberID, req.DeviceID, req.Amount)
	if err != nil {
		return response.BadGateway(c, "Hydrogen water dispenser is unavailable")
	}

	return response.Success(c, "Hydrogen water dispensing started", result)
}

// EndHydrogenWaterUsage handles ending hydrogen water dispensing
// @Summary End hydrogen water dispensing
// @Tags Devices
// @Accept json
// @Produce json
// @Param body body HydrogenWaterRequest true "Usage data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /api/devices/hydrogen-water/usage/end [post]
func (h *DeviceHandler) EndHydrogenWaterUsage(c *fiber.Ctx) error {
	var req HydrogenWaterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := validation.ValidateStruct(&req); errs != nil {
		return response.BadRequest(c, validation.Format(errs))
	}

	result, err := h.waterService.EndUsage(c.Context(), req.MemberID, req.DeviceID)
	if err != nil {
		return response.BadGateway(c, "Hydrogen water dispenser is unavailable")
	}

	return response.Success(c, "Hydrogen water dispensing ended", result)
}

// GetHydrogenWaterHistory handles fetching a member's dispensing history
// @Summary Get hydrogen water usage history
// @Tags Devices
// @Produce json
// @Param memberId path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/devices/hydrogen-water/history/{memberId} [get]
func (h *DeviceHandler) GetHydrogenWaterHistory(c *fiber.Ctx) error {
	memberID, err := strconv.ParseUint(c.Params("memberId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	history := h.waterService.GetUsageHistory(c.Context(), uint(memberID))
	return response.Success(c, "Hydrogen water history retrieved", history)
}
