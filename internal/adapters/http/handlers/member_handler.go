package handlers

import (
	"errors"
	"strconv"
	"time"

	"membership-hub/internal/adapters/persistence/models"
	"membership-hub/internal/core/domain"
	"membership-hub/internal/core/services"
	"membership-hub/internal/pkg/pagination"
	"membership-hub/internal/pkg/response"
	"membership-hub/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// MemberHandler handles member management endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// CreateMemberRequest represents create member request body
type CreateMemberRequest struct {
	MemberCode          string   `json:"member_code" validate:"omitempty,max=50"`
	StoreID             *uint    `json:"store_id"`
	FirstName           string   `json:"first_name" validate:"required,max=100"`
	LastName            string   `json:"last_name" validate:"required,max=100"`
	FirstNameKana       string   `json:"first_name_kana" validate:"omitempty,max=100"`
	LastNameKana        string   `json:"last_name_kana" validate:"omitempty,max=100"`
	Email               string   `json:"email" validate:"required,email"`
	Phone               string   `json:"phone" validate:"omitempty,max=20"`
	Birthday            string   `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Gender              string   `json:"gender" validate:"omitempty,max=10"`
	Address             string   `json:"address" validate:"omitempty,max=500"`
	PostalCode          string   `json:"postal_code" validate:"omitempty,max=10"`
	MemberType          string   `json:"member_type" validate:"omitempty,max=50"`
	Status              string   `json:"status" validate:"omitempty,max=50"`
	EnrollmentDate      string   `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
	EnrollmentMethod    string   `json:"enrollment_method" validate:"omitempty,max=50"`
	FaceRecognitionData string   `json:"face_recognition_data"`
	ProfileImageURL     string   `json:"profile_image_url" validate:"omitempty,max=500"`
	IPWhitelist         []string `json:"ip_whitelist"`
}

// CreateMember handles member registration
// @Summary Register member
// @Description Register a new member (web or tablet enrollment)
// @Tags Members
// @Accept json
// @Produce json
// @Param body body CreateMemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/members [post]
func (h *MemberHandler) CreateMember(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := validation.ValidateStruct(&req); errs != nil {
		return response.BadRequest(c, validation.Format(errs))
	}

	member := &models.Member{
		MemberCode:          req.MemberCode,
		StoreID:             req.StoreID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		FirstNameKana:       req.FirstNameKana,
		LastNameKana:        req.LastNameKana,
		Email:               req.Email,
		Phone:               req.Phone,
		Gender:              req.Gender,
		Address:             req.Address,
		PostalCode:          req.PostalCode,
		MemberType:          req.MemberType,
		Status:              req.Status,
		EnrollmentMethod:    req.EnrollmentMethod,
		FaceRecognitionData: req.FaceRecognitionData,
		ProfileImageURL:     req.ProfileImageURL,
		IPWhitelist:         req.IPWhitelist,
	}

	if req.Birthday != "" {
		birthday, _ := time.Parse(dateLayout, req.Birthday)
		member.Birthday = &birthday
	}
	if req.EnrollmentDate != "" {
		member.EnrollmentDate, _ = time.Parse(dateLayout, req.EnrollmentDate)
	}

	created, err := h.memberService.CreateMember(c.Context(), member)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Member code or email already exists")
		}
		return response.InternalServerError(c, "Failed to create member")
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": created.ToResponse(),
	})
}

// GetMember handles getting a member by ID
// @Summary Get member by ID
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/members/{id} [get]
func (h *MemberHandler) GetMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetMemberByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// GetMemberByCode handles getting a member by member code
// @Summary Get member by member code
// @Tags Members
// @Produce json
// @Param code path string true "Member code"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/members/code/{code} [get]
func (h *MemberHandler) GetMemberByCode(c *fiber.Ctx) error {
	member, err := h.memberService.GetMemberByCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// ListMembers handles paginated member listing
// @Summary List members
// @Tags Members
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Router /api/members [get]
func (h *MemberHandler) ListMembers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	members, total, err := h.memberService.ListMembers(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(toMemberResponses(members), params, total))
}

// ListMembersByStore handles paginated member listing for one store
// @Summary List members by store
// @Tags Members
// @Produce json
// @Param storeId path int true "Store ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/members/store/{storeId} [get]
func (h *MemberHandler) ListMembersByStore(c *fiber.Ctx) error {
	storeID, err := strconv.ParseUint(c.Params("storeId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid store ID")
	}

	params := pagination.GetParams(c)
	status := c.Query("status")

	members, total, err := h.memberService.ListMembersByStore(c.Context(), uint(storeID), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(toMemberResponses(members), params, total))
}

// ListMembersByEnrollment handles paginated member listing by enrollment date range
// @Summary List members by enrollment date range
// @Tags Members
// @Produce json
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/members/enrollment [get]
func (h *MemberHandler) ListMembersByEnrollment(c *fiber.Ctx) error {
	start, err := time.Parse(dateLayout, c.Query("start_date"))
	if err != nil {
		return response.BadRequest(c, "Invalid start_date (expected YYYY-MM-DD)")
	}
	end, err := time.Parse(dateLayout, c.Query("end_date"))
	if err != nil {
		return response.BadRequest(c, "Invalid end_date (expected YYYY-MM-DD)")
	}

	params := pagination.GetParams(c)

	members, total, err := h.memberService.ListMembersByEnrollmentDate(c.Context(), start, end, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(toMemberResponses(members), params, total))
}

// UpdateMemberRequest represents update member request body.
// These six fields are overwritten as given; all other member fields are immutable.
type UpdateMemberRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	Address   string `json:"address" validate:"omitempty,max=500"`
	Status    string `json:"status" validate:"required,max=50"`
}

// UpdateMember handles updating a member
// @Summary Update member
// @Description Overwrites name, email, phone, address and status
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param body body UpdateMemberRequest true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/members/{id} [put]
func (h *MemberHandler) UpdateMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := validation.ValidateStruct(&req); errs != nil {
		return response.BadRequest(c, validation.Format(errs))
	}

	input := &services.UpdateMemberInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    req.Status,
	}

	member, err := h.memberService.UpdateMember(c.Context(), uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Email already exists")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// DeleteMember handles deleting a member
// @Summary Delete member
// @Description Delete a member and all cards issued to them
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/members/{id} [delete]
func (h *MemberHandler) DeleteMember(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.DeleteMember(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete member")
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// IssueMemberCard handles card issuance for a member
// @Summary Issue member card
// @Tags Cards
// @Produce json
// @Param memberId path int true "Member ID"
// @Param cardType query string false "Card type" default(STANDARD)
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/members/{memberId}/cards [post]
func (h *MemberHandler) IssueMemberCard(c *fiber.Ctx) error {
	memberID, err := strconv.ParseUint(c.Params("memberId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	cardType := c.Query("cardType", models.CardTypeStandard)

	card, err := h.memberService.IssueMemberCard(c.Context(), uint(memberID), cardType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrDuplicateEntry):
			return response.Conflict(c, "Card number already exists")
		default:
			return response.InternalServerError(c, "Failed to issue member card")
		}
	}

	return response.Created(c, "Member card issued successfully", fiber.Map{
		"card": card,
	})
}

// GetMemberCards handles listing a member's cards
// @Summary List member cards
// @Tags Cards
// @Produce json
// @Param memberId path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/members/{memberId}/cards [get]
func (h *MemberHandler) GetMemberCards(c *fiber.Ctx) error {
	memberID, err := strconv.ParseUint(c.Params("memberId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	cards, err := h.memberService.GetMemberCards(c.Context(), uint(memberID))
	if err != nil {
		return response.InternalServerError(c, "Failed to get member cards")
	}

	return response.Success(c, "Member cards retrieved successfully", fiber.Map{
		"cards": cards,
	})
}

func toMemberResponses(members []*models.Member) []*models.MemberResponse {
	responses := make([]*models.MemberResponse, len(members))
	for i, member := range members {
		responses[i] = member.ToResponse()
	}
	return responses
}
