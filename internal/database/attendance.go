package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// AttendanceRecord is one work session of a user.
// The record is open while CheckOutTime is nil.
type AttendanceRecord struct {
	ID           uint       `gorm:"primaryKey"`
	UserID       uint       `gorm:"not null"`
	User         User       `gorm:"foreignKey:UserID"`
	CheckInTime  time.Time  `gorm:"column:check_in_time;not null"`
	CheckOutTime *time.Time `gorm:"column:check_out_time"`
}

// TableName overrides the table name used by AttendanceRecord.
func (AttendanceRecord) TableName() string {
	return "attendance"
}

// IsOpen reports whether the record still waits for a check-out.
func (r *AttendanceRecord) IsOpen() bool {
	return r != nil && r.CheckOutTime == nil
}

// WorkedHours returns the elapsed hours between check-in and check-out.
// The second return value is false while either timestamp is missing.
func (r *AttendanceRecord) WorkedHours() (float64, bool) {
	if r == nil || r.CheckOutTime == nil || r.CheckInTime.IsZero() {
		return 0, false
	}
	return r.CheckOutTime.Sub(r.CheckInTime).Seconds() / 3600, true
}

// CheckIn opens a new record for the user.
// It fails with ErrOpenRecordExists if the user already has an open record.
func (c *Client) CheckIn(ctx context.Context, userID uint, at time.Time) (*AttendanceRecord, error) {
	var record AttendanceRecord
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&AttendanceRecord{}).
			Where("user_id = ? AND check_out_time IS NULL", userID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrOpenRecordExists
		}

		record = AttendanceRecord{
			UserID:      userID,
			CheckInTime: at,
		}
		if err := tx.Create(&record).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrOpenRecordExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		if err != ErrOpenRecordExists {
			log.Error("failed to check in", "user_id", userID, "error", err)
		}
		return nil, err
	}
	return &record, nil
}

// CheckOut closes the most recent open record of the user.
// It returns nil without error if the user has no open record.
func (c *Client) CheckOut(ctx context.Context, userID uint, at time.Time) (*AttendanceRecord, error) {
	var record AttendanceRecord
	var closed bool
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND check_out_time IS NULL", userID).
			Order("id DESC").
			Limit(1).
			Find(&record)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		update := tx.Model(&AttendanceRecord{}).
			Where("id = ? AND check_out_time IS NULL", record.ID).
			Update("check_out_time", at)
		if update.Error != nil {
			return update.Error
		}
		closed = update.RowsAffected == 1
		return nil
	})
	if err != nil {
		log.Error("failed to check out", "user_id", userID, "error", err)
		return nil, err
	}
	if !closed {
		return nil, nil
	}
	record.CheckOutTime = &at
	return &record, nil
}

// GetLatestRecord returns the record with the highest id for the user.
// It returns gorm.ErrRecordNotFound if the user never checked in.
func (c *Client) GetLatestRecord(ctx context.Context, userID uint) (*AttendanceRecord, error) {
	var record AttendanceRecord
	if err := c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Take(&record).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get latest record", "user_id", userID, "error", err)
		}
		return nil, err
	}
	return &record, nil
}

// GetRecordsByUserID returns all records of one user, newest check-in first.
func (c *Client) GetRecordsByUserID(ctx context.Context, userID uint) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	if err := c.db.WithContext(ctx).
		InnerJoins("User").
		Where("attendance.user_id = ?", userID).
		Order("attendance.check_in_time DESC").
		Order("attendance.id DESC").
		Find(&records).Error; err != nil {
		log.Error("failed to get records by user", "user_id", userID, "error", err)
		return nil, err
	}
	return records, nil
}

// GetAllRecords returns the records of all users, newest check-in first.
func (c *Client) GetAllRecords(ctx context.Context) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	if err := c.db.WithContext(ctx).
		InnerJoins("User").
		Order("attendance.check_in_time DESC").
		Order("attendance.id DESC").
		Find(&records).Error; err != nil {
		log.Error("failed to get all records", "error", err)
		return nil, err
	}
	return records, nil
}

// GetOpenRecordsBefore returns open records that were checked in before the given time.
func (c *Client) GetOpenRecordsBefore(ctx context.Context, before time.Time) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	if err := c.db.WithContext(ctx).
		InnerJoins("User").
		Where("attendance.check_out_time IS NULL").
		Order("attendance.id ASC").
		Find(&records).Error; err != nil {
		log.Error("failed to get open records", "error", err)
		return nil, err
	}
	// timestamps are stored as text, compare them as time values
	return lo.Filter(records, func(r AttendanceRecord, _ int) bool {
		return r.CheckInTime.Before(before)
	}), nil
}
