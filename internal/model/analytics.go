package model

type Analytics struct {
	TotalEvents         int                  `json:"totalEvents"`
	MyEvents            int                  `json:"myEvents"`
	UpcomingEvents      int                  `json:"upcomingEvents"`
	ParticipantsByEvent []*EventParticipants `json:"participantsByEvent"`
	RegistrationTypes   RegistrationTypes    `json:"registrationTypes"`
}

type EventParticipants struct {
	EventID      int64  `json:"eventId"`
	Title        string `json:"title"`
	Participants int    `json:"participants"`
}

type RegistrationTypes struct {
	Individual int `json:"individual"`
	Team       int `json:"team"`
}
