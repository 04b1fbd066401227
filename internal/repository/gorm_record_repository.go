package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
)

// GormRecordRepository stores board records in the board_records table.
type GormRecordRepository struct {
	db *gorm.DB
}

func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// Migrate creates the board_records table if needed
func (r *GormRecordRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.BoardRecord{})
}

// Load retrieves the payload stored under name
func (r *GormRecordRepository) Load(ctx context.Context, name string) (string, error) {
	var record model.BoardRecord
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrRecordNotFound
		}
		return "", result.Error
	}
	return record.Payload, nil
}

// Save inserts the record or overwrites the payload of an existing one
func (r *GormRecordRepository) Save(ctx context.Context, name, payload string) error {
	record := &model.BoardRecord{Name: name, Payload: payload}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(record).Error
}

// Delete removes the record; a missing record is not an error
func (r *GormRecordRepository) Delete(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.BoardRecord{}).Error
}
