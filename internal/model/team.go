package model

type Team struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	EventID  int64  `json:"eventId"`
	LeaderID int64  `json:"leaderId"`
}

// HasMember reports whether userID leads the team or appears in members.
func (t *Team) HasMember(userID int64, members []*TeamMember) bool {
	if t.LeaderID == userID {
		return true
	}
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

type TeamMember struct {
	ID     int64 `json:"id"`
	TeamID int64 `json:"teamId"`
	UserID int64 `json:"userId"`
}
