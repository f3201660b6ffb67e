package favorites

import "time"

// Favorite marks one product as saved by an account. Stored locally; the
// product itself lives in the remote catalog.
type Favorite struct {
	ID        string    `gorm:"primaryKey;type:char(36)"`
	AccountID int64     `gorm:"not null;uniqueIndex:ux_favorites_account_product"`
	ProductID int64     `gorm:"not null;uniqueIndex:ux_favorites_account_product"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Favorite) TableName() string { return "favorites" }
