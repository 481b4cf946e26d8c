package repositories

import (
	"context"
	"time"

	"membership-hub/internal/adapters/persistence/models"
)

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	GetByCode(ctx context.Context, memberCode string) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, status string, offset, limit int) ([]*models.Member, int64, error)
	ListByStore(ctx context.Context, storeID uint, status string, offset, limit int) ([]*models.Member, int64, error)
	ListByEnrollmentDate(ctx context.Context, start, end time.Time, offset, limit int) ([]*models.Member, int64, error)
	CountByEnrollmentDate(ctx context.Context, start, end time.Time) (int64, error)
}

// MemberCardRepository defines member card repository interface
type MemberCardRepository interface {
	Create(ctx context.Context, card *models.MemberCard) error
	GetByCardNumber(ctx context.Context, cardNumber string) (*models.MemberCard, error)
	ListByMember(ctx context.Context, memberID uint) ([]*models.MemberCard, error)
	ListByMemberAndStatus(ctx context.Context, memberID uint, status string) ([]*models.MemberCard, error)
	DeleteByMember(ctx context.Context, memberID uint) error
}
