package services

import (
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/auth"
	"github.com/justsurfingit/govconnect/internal/database"
	"github.com/justsurfingit/govconnect/internal/dtos"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Viewer is the authenticated caller a service acts on behalf of.
type Viewer struct {
	UserID string
	Role   auth.Role
}

type Page struct {
	Page  int
	Limit int
}

func NewPage(page, limit int) Page {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Page) Result(total int64) dtos.Pagination {
	return dtos.Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}

// containsPattern builds a case-insensitive LIKE pattern with wildcards escaped.
func containsPattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}

// notFound maps gorm's missing-record error onto the caller's message.
func notFound(err error, message string) error {
	if database.IsNotFound(err) {
		return apperr.NotFound(message)
	}
	return err
}

// toggleLike flips the (target, user) membership row and adjusts the target's
// like_count by the number of rows actually changed. Returns whether the user
// now likes the target.
func toggleLike(tx *gorm.DB, target any, targetID string, like any, fkColumn, userID string) (bool, error) {
	res := tx.Where(fkColumn+" = ? AND user_id = ?", targetID, userID).Delete(like)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, bumpCounter(tx, target, targetID, "like_count", -int(res.RowsAffected))
	}

	res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, bumpCounter(tx, target, targetID, "like_count", 1)
	}
	return true, nil
}

func bumpCounter(tx *gorm.DB, target any, id, column string, delta int) error {
	return tx.Model(target).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func readCounter(tx *gorm.DB, target any, id, column string) (int, error) {
	var value int
	err := tx.Model(target).Select(column).Where("id = ?", id).Scan(&value).Error
	return value, err
}

func mustExist(tx *gorm.DB, target any, id, message string) error {
	var count int64
	if err := tx.Model(target).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound(message)
	}
	return nil
}
