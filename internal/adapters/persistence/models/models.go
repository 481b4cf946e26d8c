package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Membership Tables
// ============================================================

// Member represents members table
type Member struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	MemberCode          string     `gorm:"uniqueIndex;size:50;not null" json:"member_code"`
	StoreID             *uint      `gorm:"index" json:"store_id"`
	FirstName           string     `gorm:"size:100;not null" json:"first_name"`
	LastName            string     `gorm:"size:100;not null" json:"last_name"`
	FirstNameKana       string     `gorm:"size:100" json:"first_name_kana"`
	LastNameKana        string     `gorm:"size:100" json:"last_name_kana"`
	Email               string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Phone               string     `gorm:"size:20" json:"phone"`
	Birthday            *time.Time `gorm:"type:date" json:"birthday"`
	Gender              string     `gorm:"size:10" json:"gender"`
	Address             string     `gorm:"size:500" json:"address"`
	PostalCode          string     `gorm:"size:10" json:"postal_code"`
	MemberType          string     `gorm:"size:50;not null;default:'REGULAR'" json:"member_type"`
	Status              string     `gorm:"size:50;not null;default:'ACTIVE';index" json:"status"`
	EnrollmentDate      time.Time  `gorm:"type:date;not null;index" json:"enrollment_date"`
	EnrollmentMethod    string     `gorm:"size:50" json:"enrollment_method"`
	FaceRecognitionData string     `gorm:"type:text" json:"face_recognition_data,omitempty"`
	ProfileImageURL     string     `gorm:"size:500" json:"profile_image_url"`
	// TEXT column holding a JSON array; MySQL has no native array type
	IPWhitelist []string  `gorm:"serializer:json;type:text" json:"ip_whitelist"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse DTO
type MemberResponse struct {
	ID               uint       `json:"id"`
	MemberCode       string     `json:"member_code"`
	StoreID          *uint      `json:"store_id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	FirstNameKana    string     `json:"first_name_kana,omitempty"`
	LastNameKana     string     `json:"last_name_kana,omitempty"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	Birthday         *time.Time `json:"birthday,omitempty"`
	Gender           string     `json:"gender,omitempty"`
	Address          string     `json:"address,omitempty"`
	PostalCode       string     `json:"postal_code,omitempty"`
	MemberType       string     `json:"member_type"`
	Status           string     `json:"status"`
	EnrollmentDate   time.Time  `json:"enrollment_date"`
	EnrollmentMethod string     `json:"enrollment_method,omitempty"`
	ProfileImageURL  string     `json:"profile_image_url,omitempty"`
	IPWhitelist      []string   `json:"ip_whitelist,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:               m.ID,
		MemberCode:       m.MemberCode,
		StoreID:          m.StoreID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		FirstNameKana:    m.FirstNameKana,
		LastNameKana:     m.LastNameKana,
		Email:            m.Email,
		Phone:            m.Phone,
		Birthday:         m.Birthday,
		Gender:           m.Gender,
		Address:          m.Address,
		PostalCode:       m.PostalCode,
		MemberType:       m.MemberType,
		Status:           m.Status,
		EnrollmentDate:   m.EnrollmentDate,
		EnrollmentMethod: m.EnrollmentMethod,
		ProfileImageURL:  m.ProfileImageURL,
		IPWhitelist:      m.IPWhitelist,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// MemberCard represents member_cards table
// Cards are issued against an existing member and never updated in place;
// one member may hold multiple cards
type MemberCard struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	MemberID   uint       `gorm:"not null;index" json:"member_id"`
	CardNumber string     `gorm:"uniqueIndex;size:100;not null" json:"card_number"`
	CardType   string     `gorm:"size:50;not null" json:"card_type"`
	IssuedDate time.Time  `gorm:"type:date;not null" json:"issued_date"`
	ExpiryDate *time.Time `gorm:"type:date" json:"expiry_date"`
	Status     string     `gorm:"size:50;not null;default:'ACTIVE'" json:"status"`
	QRCode     string     `gorm:"type:text" json:"qr_code"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (MemberCard) TableName() string {
	return "member_cards"
}

// Member statuses
const (
	MemberStatusActive   = "ACTIVE"
	MemberStatusInactive = "INACTIVE"
)

// Card types / statuses
const (
	CardTypeStandard = "STANDARD"
	CardStatusActive = "ACTIVE"
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Member{},
		&MemberCard{},
	)
}
