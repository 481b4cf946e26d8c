package repositories

import (
	"context"
	"time"

	"membership-hub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByCode gets a member by member code
func (r *memberRepository) GetByCode(ctx context.Context, memberCode string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("member_code = ?", memberCode).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByEmail gets a member by email
func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a member
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// Delete deletes a member by ID (no error when the row does not exist)
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Member{}, id).Error
}

// List lists members with pagination and an optional status filter
func (r *memberRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Member{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Offset(offset).Limit(limit).Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// ListByStore lists members of a store with pagination and an optional status filter
func (r *memberRepository) ListByStore(ctx context.Context, storeID uint, status string, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Member{}).Where("store_id = ?", storeID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Offset(offset).Limit(limit).Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// ListByEnrollmentDate lists members enrolled within [start, end] with pagination
func (r *memberRepository) ListByEnrollmentDate(ctx context.Context, start, end time.Time, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("enrollment_date BETWEEN ? AND ?", start, end)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id").Offset(offset).Limit(limit).Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// CountByEnrollmentDate counts members enrolled within [start, end]
func (r *memberRepository) CountByEnrollmentDate(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("enrollment_date BETWEEN ? AND ?", start, end).
		Count(&total).Error
	return total, err
}
