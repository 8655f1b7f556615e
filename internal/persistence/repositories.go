package persistence

import "context"

// ScheduleReference names one of the four foreign keys a schedule carries.
type ScheduleReference string

const (
	ReferenceSession   ScheduleReference = "session"
	ReferenceRoom      ScheduleReference = "room"
	ReferenceTopic     ScheduleReference = "topic"
	ReferencePresenter ScheduleReference = "presenter"
)

// HighSchoolRepository exposes CRUD operations for high schools.
type HighSchoolRepository interface {
	CreateHighSchool(ctx context.Context, school HighSchool) error
	UpdateHighSchool(ctx context.Context, school HighSchool) error
	GetHighSchool(ctx context.Context, id string) (HighSchool, error)
	ListHighSchools(ctx context.Context) ([]HighSchool, error)
	DeleteHighSchool(ctx context.Context, id string) error
	CountHighSchools(ctx context.Context) (int, error)
}

// ParticipantRepository exposes CRUD operations for participants.
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, participant Participant) error
	UpdateParticipant(ctx context.Context, participant Participant) error
	GetParticipant(ctx context.Context, id string) (Participant, error)
	ListParticipants(ctx context.Context) ([]Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
	CountParticipants(ctx context.Context) (int, error)
}

// PresenterRepository exposes CRUD operations for presenters, plus the
// batched lookup used when expanding schedule references.
type PresenterRepository interface {
	CreatePresenter(ctx context.Context, presenter Presenter) error
	UpdatePresenter(ctx context.Context, presenter Presenter) error
	GetPresenter(ctx context.Context, id string) (Presenter, error)
	ListPresenters(ctx context.Context) ([]Presenter, error)
	ListPresentersByIDs(ctx context.Context, ids []string) ([]Presenter, error)
	DeletePresenter(ctx context.Context, id string) error
	CountPresenters(ctx context.Context) (int, error)
}

// RoomRepository exposes CRUD operations for rooms.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	ListRoomsByIDs(ctx context.Context, ids []string) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
	CountRooms(ctx context.Context) (int, error)
}

// SessionRepository exposes CRUD operations for time sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	UpdateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	ListSessionsByIDs(ctx context.Context, ids []string) ([]Session, error)
	DeleteSession(ctx context.Context, id string) error
	CountSessions(ctx context.Context) (int, error)
}

// TopicRepository exposes CRUD operations for topics.
type TopicRepository interface {
	CreateTopic(ctx context.Context, topic Topic) error
	UpdateTopic(ctx context.Context, topic Topic) error
	GetTopic(ctx context.Context, id string) (Topic, error)
	ListTopics(ctx context.Context) ([]Topic, error)
	ListTopicsByIDs(ctx context.Context, ids []string) ([]Topic, error)
	DeleteTopic(ctx context.Context, id string) error
	CountTopics(ctx context.Context) (int, error)
}

// ScheduleRepository stores timetable entries. ListSchedulesByReference
// matches entries whose named reference column equals the given id.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, schedule Schedule) error
	UpdateSchedule(ctx context.Context, schedule Schedule) error
	GetSchedule(ctx context.Context, id string) (Schedule, error)
	ListSchedules(ctx context.Context) ([]Schedule, error)
	ListSchedulesByReference(ctx context.Context, ref ScheduleReference, id string) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	CountSchedules(ctx context.Context) (int, error)
}
