package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jon4hz/attendance/internal/database"
	"gorm.io/gorm"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	users      map[uint]*database.User
	nextUserID uint

	records      map[uint]*database.AttendanceRecord
	nextRecordID uint

	// Error simulation
	CreateUserError           error
	GetUserByIDError          error
	GetUserByUsernameError    error
	UpdatePasswordHashError   error
	CheckInError              error
	CheckOutError             error
	GetLatestRecordError      error
	GetRecordsByUserIDError   error
	GetAllRecordsError        error
	GetOpenRecordsBeforeError error
	GetStatsError             error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:        make(map[uint]*database.User),
		nextUserID:   1,
		records:      make(map[uint]*database.AttendanceRecord),
		nextRecordID: 1,
	}
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[uint]*database.User)
	m.nextUserID = 1
	m.records = make(map[uint]*database.AttendanceRecord)
	m.nextRecordID = 1

	m.CreateUserError = nil
	m.GetUserByIDError = nil
	m.GetUserByUsernameError = nil
	m.UpdatePasswordHashError = nil
	m.CheckInError = nil
	m.CheckOutError = nil
	m.GetLatestRecordError = nil
	m.GetRecordsByUserIDError = nil
	m.GetAllRecordsError = nil
	m.GetOpenRecordsBeforeError = nil
	m.GetStatsError = nil
}

func (m *MockDB) Close() error {
	return nil
}

// User operations

func (m *MockDB) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*database.User, error) {
	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return nil, database.ErrDuplicateUsername
		}
	}

	user := &database.User{
		ID:           m.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	m.nextUserID++
	m.users[user.ID] = user

	copied := *user
	return &copied, nil
}

func (m *MockDB) GetUserByID(ctx context.Context, id uint) (*database.User, error) {
	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockDB) GetUserByUsername(ctx context.Context, username string) (*database.User, error) {
	if m.GetUserByUsernameError != nil {
		return nil, m.GetUserByUsernameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDB) UpdatePasswordHash(ctx context.Context, username, passwordHash string, grantAdmin bool) error {
	if m.UpdatePasswordHashError != nil {
		return m.UpdatePasswordHashError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			user.PasswordHash = passwordHash
			if grantAdmin {
				user.IsAdmin = true
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// Attendance operations

func (m *MockDB) CheckIn(ctx context.Context, userID uint, at time.Time) (*database.AttendanceRecord, error) {
	if m.CheckInError != nil {
		return nil, m.CheckInError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.UserID == userID && r.CheckOutTime == nil {
			return nil, database.ErrOpenRecordExists
		}
	}

	record := &database.AttendanceRecord{
		ID:          m.nextRecordID,
		UserID:      userID,
		CheckInTime: at,
	}
	m.nextRecordID++
	m.records[record.ID] = record

	copied := *record
	return &copied, nil
}

func (m *MockDB) CheckOut(ctx context.Context, userID uint, at time.Time) (*database.AttendanceRecord, error) {
	if m.CheckOutError != nil {
		return nil, m.CheckOutError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *database.AttendanceRecord
	for _, r := range m.records {
		if r.UserID == userID && r.CheckOutTime == nil && (latest == nil || r.ID > latest.ID) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	checkOut := at
	latest.CheckOutTime = &checkOut

	copied := *latest
	return &copied, nil
}

func (m *MockDB) GetLatestRecord(ctx context.Context, userID uint) (*database.AttendanceRecord, error) {
	if m.GetLatestRecordError != nil {
		return nil, m.GetLatestRecordError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *database.AttendanceRecord
	for _, r := range m.records {
		if r.UserID == userID && (latest == nil || r.ID > latest.ID) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *MockDB) GetRecordsByUserID(ctx context.Context, userID uint) ([]database.AttendanceRecord, error) {
	if m.GetRecordsByUserIDError != nil {
		return nil, m.GetRecordsByUserIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(func(r *database.AttendanceRecord) bool { return r.UserID == userID }), nil
}

func (m *MockDB) GetAllRecords(ctx context.Context) ([]database.AttendanceRecord, error) {
	if m.GetAllRecordsError != nil {
		return nil, m.GetAllRecordsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(func(*database.AttendanceRecord) bool { return true }), nil
}

func (m *MockDB) GetOpenRecordsBefore(ctx context.Context, before time.Time) ([]database.AttendanceRecord, error) {
	if m.GetOpenRecordsBeforeError != nil {
		return nil, m.GetOpenRecordsBeforeError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.collect(func(r *database.AttendanceRecord) bool {
		return r.CheckOutTime == nil && r.CheckInTime.Before(before)
	})
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (m *MockDB) GetStats(ctx context.Context) (*database.Stats, error) {
	if m.GetStatsError != nil {
		return nil, m.GetStatsError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats database.Stats
	for _, u := range m.users {
		stats.Users++
		if u.IsAdmin {
			stats.Admins++
		}
	}
	for _, r := range m.records {
		stats.Records++
		if r.CheckOutTime == nil {
			stats.OpenRecords++
		}
	}
	return &stats, nil
}

// collect returns matching records joined with their user, newest check-in first.
// Records of unknown users are dropped like an inner join would.
func (m *MockDB) collect(match func(r *database.AttendanceRecord) bool) []database.AttendanceRecord {
	var records []database.AttendanceRecord
	for _, r := range m.records {
		if !match(r) {
			continue
		}
		user, ok := m.users[r.UserID]
		if !ok {
			continue
		}
		copied := *r
		copied.User = *user
		records = append(records, copied)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CheckInTime.Equal(records[j].CheckInTime) {
			return records[i].ID > records[j].ID
		}
		return records[i].CheckInTime.After(records[j].CheckInTime)
	})
	return records
}

// Helper methods for testing

// AddRecord inserts a record as is, bypassing the open record check.
func (m *MockDB) AddRecord(record database.AttendanceRecord) *database.AttendanceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	record.ID = m.nextRecordID
	m.nextRecordID++
	m.records[record.ID] = &record

	copied := record
	return &copied
}

// RecordCount returns the number of stored records.
func (m *MockDB) RecordCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
