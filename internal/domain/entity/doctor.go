package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor represents a doctor profile linked 1:1 to a User with role=doctor.
// Availability days/hours are advisory; booking only enforces IsAvailable
// and exact slot uniqueness.
type Doctor struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Specializations StringList      `gorm:"type:jsonb;not null" json:"specializations"`
	ExperienceYears int             `gorm:"not null" json:"experience_years"`
	Qualifications  string          `gorm:"type:text" json:"qualifications"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	AvailableDays   StringList      `gorm:"type:jsonb;not null" json:"available_days"`
	AvailableHours  HourMap         `gorm:"type:jsonb;not null" json:"available_hours"`
	IsAvailable     bool            `gorm:"not null;default:true;index" json:"is_available"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
