package persistence

import "time"

// HighSchool represents a school a participant registers from.
type HighSchool struct {
	ID   string
	Name string
}

// Participant represents an attendee registration record.
type Participant struct {
	ID              string
	LastName        string
	FirstName       string
	Address         string
	Email           string
	HighSchoolID    string
	RegisteredAt    time.Time
	ParticipantType string
}

// Presenter represents a speaker in the catalog.
type Presenter struct {
	ID          string
	LastName    string
	FirstName   string
	Occupation  string
	MainPhone   string
	MobilePhone string
	Email       string
}

// Room represents a physical room available for sessions.
type Room struct {
	ID         string
	RoomNumber int
	Building   string
	Capacity   int
}

// Session represents a time slot in the event day. Start and end are short
// clock tokens such as "08:00" rather than full timestamps.
type Session struct {
	ID        string
	StartTime string
	EndTime   string
}

// Topic represents a presentation subject.
type Topic struct {
	ID          string
	Title       string
	Description string
}

// Schedule binds one session, room, topic and presenter into a timetable
// slot. The four references are stored verbatim; the store never guarantees
// that the referenced records still exist.
type Schedule struct {
	ID          string
	SessionID   string
	RoomID      string
	TopicID     string
	PresenterID string
}
