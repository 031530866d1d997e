package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Role
		expectErr bool
	}{
		{name: "organizer", input: "organizer", expected: RoleOrganizer},
		{name: "participant", input: "participant", expected: RoleParticipant},
		{name: "unknown role", input: "admin", expectErr: true},
		{name: "wrong case", input: "Organizer", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRole(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  time.Time
		expectErr bool
	}{
		{name: "rfc3339", input: "2025-03-01T10:00:00Z", expected: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "rfc3339 with offset", input: "2025-03-01T12:00:00+02:00", expected: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "datetime-local", input: "2025-03-01T10:00", expected: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{name: "date only", input: "2025-03-01", expected: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", input: "next tuesday", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestUserJSONHidesPassword(t *testing.T) {
	raw, err := json.Marshal(&User{ID: 1, Username: "alice", Password: "hash", Role: RoleParticipant})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.NotContains(t, string(raw), "password")
}

func TestRegistrationJSONNullTeam(t *testing.T) {
	raw, err := json.Marshal(&Registration{ID: 3, EventID: 1, UserID: 2, Status: RegistrationStatusPending})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"eventId":1,"userId":2,"teamId":null,"status":"pending"}`, string(raw))
}

func TestTeamHasMember(t *testing.T) {
	team := &Team{ID: 5, LeaderID: 1}
	members := []*TeamMember{{ID: 6, TeamID: 5, UserID: 2}}

	assert.True(t, team.HasMember(1, members))
	assert.True(t, team.HasMember(2, members))
	assert.False(t, team.HasMember(3, members))
}
