package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jon4hz/attendance/internal/cache"
	"github.com/jon4hz/attendance/internal/config"
	"github.com/jon4hz/attendance/internal/database"
	dbmock "github.com/jon4hz/attendance/internal/database/mock"
	"github.com/jon4hz/attendance/internal/password"
	"github.com/stretchr/testify/suite"
)

type TrackerTestSuite struct {
	suite.Suite
	db      *dbmock.MockDB
	tracker *Tracker
	ctx     context.Context
	clock   time.Time
}

func TestTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) SetupTest() {
	s.db = dbmock.NewMockDB()
	throttle := cache.NewLoginThrottle(
		&config.CacheConfig{Type: config.CacheTypeMemory},
		&config.AuthConfig{MaxFailedLogins: 3, LockoutWindow: time.Minute},
	)
	s.tracker = New(s.db, password.New(1), throttle)
	s.ctx = context.Background()
	s.clock = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s.tracker.now = func() time.Time { return s.clock }
}

func (s *TrackerTestSuite) register(name, pw string) *database.User {
	user, err := s.tracker.Register(s.ctx, name, pw)
	s.Require().NoError(err)
	return user
}

func (s *TrackerTestSuite) TestRegister() {
	user := s.register("alice", "pw")
	s.False(user.IsAdmin)
	s.NotEqual("pw", user.PasswordHash)

	stored, err := s.db.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(password.New(1).Verify(stored.PasswordHash, "pw"))
}

func (s *TrackerTestSuite) TestRegister_Duplicate() {
	s.register("alice", "first")
	before, err := s.db.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.tracker.Register(s.ctx, "alice", "second")
	s.ErrorIs(err, ErrDuplicateUsername)

	after, err := s.db.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(before.PasswordHash, after.PasswordHash)
}

func (s *TrackerTestSuite) TestRegister_MissingFields() {
	_, err := s.tracker.Register(s.ctx, "", "pw")
	s.ErrorIs(err, ErrMissingCredentials)
	_, err = s.tracker.Register(s.ctx, "alice", "  ")
	s.ErrorIs(err, ErrMissingCredentials)
}

func (s *TrackerTestSuite) TestRegister_StorageError() {
	s.db.GetUserByUsernameError = errors.New("disk on fire")

	_, err := s.tracker.Register(s.ctx, "alice", "pw")
	s.Error(err)
	s.NotErrorIs(err, ErrDuplicateUsername)
}

func (s *TrackerTestSuite) TestLogin() {
	registered := s.register("alice", "pw")

	user, err := s.tracker.Login(s.ctx, "alice", "pw")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.Equal("alice", user.Username)
	s.False(user.IsAdmin)
}

func (s *TrackerTestSuite) TestLogin_Invalid() {
	s.register("alice", "pw")

	_, err := s.tracker.Login(s.ctx, "alice", "nope")
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.tracker.Login(s.ctx, "mallory", "pw")
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.tracker.Login(s.ctx, "alice", "")
	s.ErrorIs(err, ErrMissingCredentials)
}

func (s *TrackerTestSuite) TestLogin_Throttled() {
	s.register("alice", "pw")

	for i := 0; i < 3; i++ {
		_, err := s.tracker.Login(s.ctx, "alice", "nope")
		s.ErrorIs(err, ErrInvalidCredentials)
	}

	_, err := s.tracker.Login(s.ctx, "alice", "pw")
	s.ErrorIs(err, ErrTooManyAttempts)
}

func (s *TrackerTestSuite) TestLogin_SuccessResetsThrottle() {
	s.register("alice", "pw")

	for i := 0; i < 2; i++ {
		_, _ = s.tracker.Login(s.ctx, "alice", "nope")
	}
	_, err := s.tracker.Login(s.ctx, "alice", "pw")
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		_, _ = s.tracker.Login(s.ctx, "alice", "nope")
	}
	_, err = s.tracker.Login(s.ctx, "alice", "pw")
	s.NoError(err)
}

func (s *TrackerTestSuite) TestClock_CheckInCheckOut() {
	user := s.register("alice", "pw")

	s.Require().NoError(s.tracker.Clock(s.ctx, user.ID, ActionCheckIn))
	status, err := s.tracker.Status(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(status.Record)
	s.True(status.Record.IsOpen())
	s.False(status.HasHours)

	s.clock = s.clock.Add(8*time.Hour + 30*time.Minute)
	s.Require().NoError(s.tracker.Clock(s.ctx, user.ID, ActionCheckOut))

	status, err = s.tracker.Status(s.ctx, user.ID)
	s.Require().NoError(err)
	s.True(status.HasHours)
	s.InDelta(8.5, status.Hours, 1e-9)
}

func (s *TrackerTestSuite) TestClock_DoubleCheckIn() {
	user := s.register("alice", "pw")

	s.Require().NoError(s.tracker.Clock(s.ctx, user.ID, ActionCheckIn))
	s.ErrorIs(s.tracker.Clock(s.ctx, user.ID, ActionCheckIn), ErrAlreadyCheckedIn)
	s.Equal(1, s.db.RecordCount())
}

func (s *TrackerTestSuite) TestClock_CheckOutWithoutOpenRecord() {
	user := s.register("alice", "pw")

	s.NoError(s.tracker.Clock(s.ctx, user.ID, ActionCheckOut))
	s.Equal(0, s.db.RecordCount())
}

func (s *TrackerTestSuite) TestClock_UnknownAction() {
	s.ErrorIs(s.tracker.Clock(s.ctx, 1, Action("nap")), ErrUnknownAction)
}

func (s *TrackerTestSuite) TestClock_StorageError() {
	s.db.CheckInError = errors.New("locked")
	err := s.tracker.Clock(s.ctx, 1, ActionCheckIn)
	s.Error(err)
	s.NotErrorIs(err, ErrAlreadyCheckedIn)
}

func (s *TrackerTestSuite) TestStatus_NoRecords() {
	status, err := s.tracker.Status(s.ctx, 99)
	s.Require().NoError(err)
	s.Nil(status.Record)
	s.False(status.HasHours)
}

func (s *TrackerTestSuite) TestHistory_Scoping() {
	alice := s.register("alice", "pw")
	bob := s.register("bob", "pw")

	for _, uid := range []uint{alice.ID, bob.ID, alice.ID} {
		s.Require().NoError(s.tracker.Clock(s.ctx, uid, ActionCheckIn))
		s.clock = s.clock.Add(time.Hour)
		s.Require().NoError(s.tracker.Clock(s.ctx, uid, ActionCheckOut))
		s.clock = s.clock.Add(time.Hour)
	}

	own, err := s.tracker.History(s.ctx, alice.ID, false)
	s.Require().NoError(err)
	s.Len(own, 2)
	for _, r := range own {
		s.Equal(alice.ID, r.UserID)
	}

	all, err := s.tracker.History(s.ctx, alice.ID, true)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.True(all[0].CheckInTime.After(all[1].CheckInTime))
}

func (s *TrackerTestSuite) TestSetPassword() {
	s.register("admin_user", "old")

	s.Require().NoError(s.tracker.SetPassword(s.ctx, "admin_user", "new", true, false))

	user, err := s.tracker.Login(s.ctx, "admin_user", "new")
	s.Require().NoError(err)
	s.True(user.IsAdmin)

	_, err = s.tracker.Login(s.ctx, "admin_user", "old")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *TrackerTestSuite) TestSetPassword_MissingUser() {
	s.ErrorIs(s.tracker.SetPassword(s.ctx, "ghost", "pw", false, false), ErrUserNotFound)

	s.Require().NoError(s.tracker.SetPassword(s.ctx, "ghost", "pw", true, true))
	user, err := s.tracker.Login(s.ctx, "ghost", "pw")
	s.Require().NoError(err)
	s.True(user.IsAdmin)
}

func (s *TrackerTestSuite) TestStaleOpenRecords() {
	alice := s.register("alice", "pw")
	bob := s.register("bob", "pw")

	s.db.AddRecord(database.AttendanceRecord{UserID: alice.ID, CheckInTime: s.clock.Add(-13 * time.Hour)})
	s.db.AddRecord(database.AttendanceRecord{UserID: bob.ID, CheckInTime: s.clock.Add(-time.Hour)})

	stale, err := s.tracker.StaleOpenRecords(s.ctx, 12*time.Hour)
	s.Require().NoError(err)
	s.Require().Len(stale, 1)
	s.Equal("alice", stale[0].User.Username)

	s.NoError(s.tracker.ReportStaleOpenRecords(s.ctx, 12*time.Hour))

	s.db.GetOpenRecordsBeforeError = errors.New("boom")
	s.Error(s.tracker.ReportStaleOpenRecords(s.ctx, 12*time.Hour))
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "check_in", want: ActionCheckIn},
		{in: "check_out", want: ActionCheckOut},
		{in: "", wantErr: true},
		{in: "CHECK_IN", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownAction) {
					t.Fatalf("expected ErrUnknownAction, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseAction(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}
