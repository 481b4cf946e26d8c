package repositories

import (
	"context"

	"membership-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberCardRepository implements MemberCardRepository interface
type memberCardRepository struct {
	db *gorm.DB
}

// NewMemberCardRepository creates a new member card repository
func NewMemberCardRepository(db *gorm.DB) MemberCardRepository {
	return &memberCardRepository{db: db}
}

// Create creates a new member card
func (r *memberCardRepository) Create(ctx context.Context, card *models.MemberCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// GetByCardNumber gets a card by card number
func (r *memberCardRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*models.MemberCard, error) {
	var card models.MemberCard
	err := r.db.WithContext(ctx).Where("card_number = ?", cardNumber).First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// ListByMember lists all cards issued to a member
func (r *memberCardRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.MemberCard, error) {
	var cards []*models.MemberCard
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("id").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// ListByMemberAndStatus lists a member's cards with a given status
func (r *memberCardRepository) ListByMemberAndStatus(ctx context.Context, memberID uint, status string) ([]*models.MemberCard, error) {
	var cards []*models.MemberCard
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, status).
		Order("id").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// DeleteByMember deletes all cards issued to a member
func (r *memberCardRepository) DeleteByMember(ctx context.Context, memberID uint) error {
	return r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&models.MemberCard{}).Error
}
