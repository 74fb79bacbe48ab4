package database

import (
	"context"

	"github.com/charmbracelet/log"
)

// Stats provides overall counts of the attendance database.
type Stats struct {
	Users       int64
	Admins      int64
	Records     int64
	OpenRecords int64
}

// GetStats counts users and attendance records.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	db := c.db.WithContext(ctx)

	if err := db.Model(&User{}).Count(&stats.Users).Error; err != nil {
		log.Error("failed to count users", "error", err)
		return nil, err
	}
	if err := db.Model(&User{}).Where("is_admin = ?", true).Count(&stats.Admins).Error; err != nil {
		log.Error("failed to count admins", "error", err)
		return nil, err
	}
	if err := db.Model(&AttendanceRecord{}).Count(&stats.Records).Error; err != nil {
		log.Error("failed to count records", "error", err)
		return nil, err
	}
	if err := db.Model(&AttendanceRecord{}).Where("check_out_time IS NULL").Count(&stats.OpenRecords).Error; err != nil {
		log.Error("failed to count open records", "error", err)
		return nil, err
	}
	return &stats, nil
}
