package catalog

import (
	"strings"
	"time"

	"github.com/ergolife/storefront/internal/domain/shared"
)

// Review is a customer rating attached to a product
type Review struct {
	shared.BaseEntity
	ProductID uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	UserName  string    `gorm:"type:varchar(100);not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	Date      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review. Rating must be between 1 and 5.
func NewReview(userID uint, userName string, rating int, comment string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(userName) == "" {
		return Review{}, shared.NewDomainError("INVALID_NAME", "Reviewer name cannot be empty")
	}
	entity := shared.NewBaseEntity()
	return Review{
		BaseEntity: entity,
		UserID:     userID,
		UserName:   strings.TrimSpace(userName),
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		Date:       entity.CreatedAt,
	}, nil
}
