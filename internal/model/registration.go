package model

type RegistrationStatus string

const RegistrationStatusPending RegistrationStatus = "pending"

type Registration struct {
	ID      int64              `json:"id"`
	EventID int64              `json:"eventId"`
	UserID  int64              `json:"userId"`
	TeamID  *int64             `json:"teamId"`
	Status  RegistrationStatus `json:"status"`
}

func (r *Registration) IsTeam() bool {
	return r.TeamID != nil
}
