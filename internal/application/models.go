package application

import (
	"github.com/example/event-registry/internal/persistence"
)

// EntityKind names a catalog entity for cross-reference resolution and
// kind-qualified errors.
type EntityKind string

const (
	KindHighSchool  EntityKind = "highschool"
	KindParticipant EntityKind = "participant"
	KindPresenter   EntityKind = "presenter"
	KindRoom        EntityKind = "room"
	KindSession     EntityKind = "session"
	KindTopic       EntityKind = "topic"
	KindSchedule    EntityKind = "schedule"
)

// HighSchoolInput captures caller provided high school fields.
type HighSchoolInput struct {
	Name string
}

// ParticipantInput captures caller provided participant fields.
type ParticipantInput struct {
	LastName        string
	FirstName       string
	Address         string
	Email           string
	HighSchoolID    string
	ParticipantType string
}

// PresenterInput captures caller provided presenter fields.
type PresenterInput struct {
	LastName    string
	FirstName   string
	Occupation  string
	MainPhone   string
	MobilePhone string
	Email       string
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	RoomNumber int
	Building   string
	Capacity   int
}

// SessionInput captures caller provided session fields.
type SessionInput struct {
	StartTime string
	EndTime   string
}

// TopicInput captures caller provided topic fields.
type TopicInput struct {
	Title       string
	Description string
}

// ScheduleInput captures the four reference ids a schedule is composed from.
type ScheduleInput struct {
	SessionID   string
	RoomID      string
	TopicID     string
	PresenterID string
}

// EnrichedSchedule is a schedule with its references expanded inline. A nil
// reference means the target record has been deleted since the schedule was
// composed; dangling references are tolerated, not repaired.
type EnrichedSchedule struct {
	ID        string
	Session   *persistence.Session
	Room      *persistence.Room
	Topic     *persistence.Topic
	Presenter *persistence.Presenter
}

// DetailResult is the outcome of cross-reference resolution: the primary
// entity (exactly one of the pointer fields is set, matching Kind) and every
// schedule touching it, enriched.
type DetailResult struct {
	Kind      EntityKind
	Session   *persistence.Session
	Room      *persistence.Room
	Topic     *persistence.Topic
	Presenter *persistence.Presenter
	Schedules []EnrichedSchedule
}

// ParticipantDetail is a participant with its high school reference
// resolved; HighSchool is nil when the reference dangles.
type ParticipantDetail struct {
	Participant persistence.Participant
	HighSchool  *persistence.HighSchool
}

// Summary holds the per-collection record counts for the dashboard.
type Summary struct {
	Participants int
	Presenters   int
	Sessions     int
	Topics       int
	Rooms        int
	HighSchools  int
	Schedules    int
}

// ReferenceRepositories bundles the four collections a schedule refers to.
type ReferenceRepositories struct {
	Sessions   persistence.SessionRepository
	Rooms      persistence.RoomRepository
	Topics     persistence.TopicRepository
	Presenters persistence.PresenterRepository
}
