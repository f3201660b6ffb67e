package favorites

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Add saves a product. A duplicate add is not an error: the unique index
// catches it and the row already says what the user wants.
func (r *Repo) Add(ctx context.Context, accountID, productID int64) error {
	f := Favorite{
		ID:        uuid.NewString(),
		AccountID: accountID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Create(&f).Error
	if isDuplicateKey(err) {
		return nil
	}
	return err
}

func (r *Repo) Remove(ctx context.Context, accountID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Delete(&Favorite{}).Error
}

// List returns the saved product ids, newest first.
func (r *Repo) List(ctx context.Context, accountID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&Favorite{}).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Pluck("product_id", &ids).Error
	return ids, err
}

func (r *Repo) Contains(ctx context.Context, accountID, productID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Favorite{}).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Count(&n).Error
	return n > 0, err
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// 1062: Duplicate entry
		return me.Number == 1062
	}
	return false
}
