package ownership

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForOwner returns a GORM scope restricting a query to rows owned by
// the given account. Every lead read and write goes through it, so
// ownership partitioning is enforced in one place.
func ForOwner(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", userID)
	}
}
