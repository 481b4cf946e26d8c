package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"membership-hub/internal/adapters/persistence/models"
	"membership-hub/internal/adapters/persistence/repositories"
	"membership-hub/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberService handles member and card business logic
type MemberService struct {
	db         *gorm.DB
	memberRepo repositories.MemberRepository
	cardRepo   repositories.MemberCardRepository
}

// NewMemberService creates a new member service
func NewMemberService(
	db *gorm.DB,
	memberRepo repositories.MemberRepository,
	cardRepo repositories.MemberCardRepository,
) *MemberService {
	return &MemberService{
		db:         db,
		memberRepo: memberRepo,
		cardRepo:   cardRepo,
	}
}

// UpdateMemberInput represents update member input.
// Exactly these six fields are mutable; everything else keeps its stored value.
type UpdateMemberInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Status    string `json:"status"`
}

// CreateMember registers a new member.
// Member code and enrollment date are generated when absent; uniqueness of
// code and email is left to the database constraints and surfaced as
// domain.ErrDuplicateEntry.
func (s *MemberService) CreateMember(ctx context.Context, member *models.Member) (*models.Member, error) {
	if member.MemberCode == "" {
		member.MemberCode = generateMemberCode()
	}
	if member.EnrollmentDate.IsZero() {
		member.EnrollmentDate = today()
	}
	if member.Status == "" {
		member.Status = models.MemberStatusActive
	}
	if member.MemberType == "" {
		member.MemberType = "REGULAR"
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repositories.NewMemberRepository(tx).Create(ctx, member)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, err
	}

	return member, nil
}

// GetMemberByID gets a member by ID
func (s *MemberService) GetMemberByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetMemberByCode gets a member by member code
func (s *MemberService) GetMemberByCode(ctx context.Context, memberCode string) (*models.Member, error) {
	member, err := s.memberRepo.GetByCode(ctx, memberCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// ListMembers lists members with pagination and an optional status filter
func (s *MemberService) ListMembers(ctx context.Context, status string, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.List(ctx, status, offset, limit)
}

// ListMembersByStore lists a store's members with pagination and an optional status filter
func (s *MemberService) ListMembersByStore(ctx context.Context, storeID uint, status string, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.ListByStore(ctx, storeID, status, offset, limit)
}

// ListMembersByEnrollmentDate lists members enrolled within [start, end] with pagination
func (s *MemberService) ListMembersByEnrollmentDate(ctx context.Context, start, end time.Time, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.ListByEnrollmentDate(ctx, start, end, offset, limit)
}

// UpdateMember overwrites the six mutable fields of an existing member
func (s *MemberService) UpdateMember(ctx context.Context, id uint, input *UpdateMemberInput) (*models.Member, error) {
	var updated *models.Member

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repositories.NewMemberRepository(tx)

		member, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemberNotFound
			}
			return err
		}

		member.FirstName = input.FirstName
		member.LastName = input.LastName
		member.Email = input.Email
		member.Phone = input.Phone
		member.Address = input.Address
		member.Status = input.Status

		if err := repo.Update(ctx, member); err != nil {
			return err
		}

		updated = member
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, err
	}

	return updated, nil
}

// DeleteMember deletes a member and all cards issued to them.
// Deleting an unknown ID is a no-op.
func (s *MemberService) DeleteMember(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewMemberCardRepository(tx).DeleteByMember(ctx, id); err != nil {
			return err
		}
		return repositories.NewMemberRepository(tx).Delete(ctx, id)
	})
}

// IssueMemberCard issues a new card for an existing member
func (s *MemberService) IssueMemberCard(ctx context.Context, memberID uint, cardType string) (*models.MemberCard, error) {
	if cardType == "" {
		cardType = models.CardTypeStandard
	}

	var card *models.MemberCard

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := repositories.NewMemberRepository(tx).GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemberNotFound
			}
			return err
		}

		card = &models.MemberCard{
			MemberID:   member.ID,
			CardNumber: generateCardNumber(),
			CardType:   cardType,
			IssuedDate: today(),
			Status:     models.CardStatusActive,
			QRCode:     generateQRCode(member.MemberCode),
		}

		return repositories.NewMemberCardRepository(tx).Create(ctx, card)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, err
	}

	return card, nil
}

// GetMemberCards lists all cards issued to a member (empty slice when none)
func (s *MemberService) GetMemberCards(ctx context.Context, memberID uint) ([]*models.MemberCard, error) {
	cards, err := s.cardRepo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []*models.MemberCard{}
	}
	return cards, nil
}

// generateMemberCode builds codes like MEM1700000000000A1B2C3D4.
// The random suffix keeps codes distinct even within the same millisecond.
func generateMemberCode() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("MEM%d%s", time.Now().UnixMilli(), suffix)
}

// generateCardNumber builds card numbers like CARD1700000000000
func generateCardNumber() string {
	return fmt.Sprintf("CARD%d", time.Now().UnixMilli())
}

// generateQRCode returns the QR payload placeholder for a member code.
// Real QR generation lives outside this service.
func generateQRCode(memberCode string) string {
	return fmt.Sprintf("QR:%s:%d", memberCode, time.Now().UnixMilli())
}

// today returns the current date truncated to midnight local time
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
