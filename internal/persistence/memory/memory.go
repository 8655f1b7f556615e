// Package memory provides an in-memory implementation of every catalog
// repository interface. It backs unit tests and fixtures; ordering matches
// the SQL repositories so the two stores are interchangeable in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/example/event-registry/internal/persistence"
)

// Storage holds every catalog collection behind one lock. Records are value
// types, so map reads and writes copy naturally.
type Storage struct {
	mu           sync.RWMutex
	highSchools  map[string]persistence.HighSchool
	participants map[string]persistence.Participant
	presenters   map[string]persistence.Presenter
	rooms        map[string]persistence.Room
	sessions     map[string]persistence.Session
	topics       map[string]persistence.Topic
	schedules    map[string]persistence.Schedule
}

// NewStorage returns an empty in-memory store.
func NewStorage() *Storage {
	return &Storage{
		highSchools:  make(map[string]persistence.HighSchool),
		participants: make(map[string]persistence.Participant),
		presenters:   make(map[string]persistence.Presenter),
		rooms:        make(map[string]persistence.Room),
		sessions:     make(map[string]persistence.Session),
		topics:       make(map[string]persistence.Topic),
		schedules:    make(map[string]persistence.Schedule),
	}
}

// --- HighSchoolRepository ---

func (s *Storage) CreateHighSchool(ctx context.Context, school persistence.HighSchool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.highSchools[school.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.highSchools[school.ID] = school
	return nil
}

func (s *Storage) UpdateHighSchool(ctx context.Context, school persistence.HighSchool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.highSchools[school.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.highSchools[school.ID] = school
	return nil
}

func (s *Storage) GetHighSchool(ctx context.Context, id string) (persistence.HighSchool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	school, ok := s.highSchools[id]
	if !ok {
		return persistence.HighSchool{}, persistence.ErrNotFound
	}
	return school, nil
}

func (s *Storage) ListHighSchools(ctx context.Context) ([]persistence.HighSchool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schools := make([]persistence.HighSchool, 0, len(s.highSchools))
	for _, school := range s.highSchools {
		schools = append(schools, school)
	}
	sort.Slice(schools, func(i, j int) bool {
		if schools[i].Name == schools[j].Name {
			return schools[i].ID < schools[j].ID
		}
		return schools[i].Name < schools[j].Name
	})
	return schools, nil
}

func (s *Storage) DeleteHighSchool(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.highSchools[id]; !ok {
		return persistence.ErrNotFound
	}
	// Participants referencing the school keep their dangling id.
	delete(s.highSchools, id)
	return nil
}

func (s *Storage) CountHighSchools(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.highSchools), nil
}

// --- ParticipantRepository ---

func (s *Storage) CreateParticipant(ctx context.Context, participant persistence.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[participant.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.participants[participant.ID] = participant
	return nil
}

func (s *Storage) UpdateParticipant(ctx context.Context, participant persistence.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.participants[participant.ID]
	if !ok {
		return persistence.ErrNotFound
	}
	// Replace-by-id keeps the original registration timestamp.
	participant.RegisteredAt = existing.RegisteredAt
	s.participants[participant.ID] = participant
	return nil
}

func (s *Storage) GetParticipant(ctx context.Context, id string) (persistence.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participant, ok := s.participants[id]
	if !ok {
		return persistence.Participant{}, persistence.ErrNotFound
	}
	return participant, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]persistence.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participants := make([]persistence.Participant, 0, len(s.participants))
	for _, participant := range s.participants {
		participants = append(participants, participant)
	}
	sort.Slice(participants, func(i, j int) bool {
		a, b := participants[i], participants[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	return participants, nil
}

func (s *Storage) DeleteParticipant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.participants, id)
	return nil
}

func (s *Storage) CountParticipants(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants), nil
}

// --- PresenterRepository ---

func (s *Storage) CreatePresenter(ctx context.Context, presenter persistence.Presenter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presenters[presenter.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.presenters[presenter.ID] = presenter
	return nil
}

func (s *Storage) UpdatePresenter(ctx context.Context, presenter persistence.Presenter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presenters[presenter.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.presenters[presenter.ID] = presenter
	return nil
}

func (s *Storage) GetPresenter(ctx context.Context, id string) (persistence.Presenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	presenter, ok := s.presenters[id]
	if !ok {
		return persistence.Presenter{}, persistence.ErrNotFound
	}
	return presenter, nil
}

func (s *Storage) ListPresenters(ctx context.Context) ([]persistence.Presenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	presenters := make([]persistence.Presenter, 0, len(s.presenters))
	for _, presenter := range s.presenters {
		presenters = append(presenters, presenter)
	}
	sort.Slice(presenters, func(i, j int) bool {
		a, b := presenters[i], presenters[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	return presenters, nil
}

func (s *Storage) ListPresentersByIDs(ctx context.Context, ids []string) ([]persistence.Presenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var presenters []persistence.Presenter
	for _, id := range ids {
		if presenter, ok := s.presenters[id]; ok {
			presenters = append(presenters, presenter)
		}
	}
	return presenters, nil
}

func (s *Storage) DeletePresenter(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presenters[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.presenters, id)
	return nil
}

func (s *Storage) CountPresenters(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.presenters), nil
}

// --- RoomRepository ---

func (s *Storage) CreateRoom(ctx context.Context, room persistence.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.rooms[room.ID] = room
	return nil
}

func (s *Storage) UpdateRoom(ctx context.Context, room persistence.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.rooms[room.ID] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return room, nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]persistence.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		a, b := rooms[i], rooms[j]
		if a.RoomNumber != b.RoomNumber {
			return a.RoomNumber < b.RoomNumber
		}
		return a.ID < b.ID
	})
	return rooms, nil
}

func (s *Storage) ListRoomsByIDs(ctx context.Context, ids []string) ([]persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rooms []persistence.Room
	for _, id := range ids {
		if room, ok := s.rooms[id]; ok {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return persistence.ErrNotFound
	}
	// No cascade: schedules referencing the room keep their dangling id.
	delete(s.rooms, id)
	return nil
}

func (s *Storage) CountRooms(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms), nil
}

// --- SessionRepository ---

func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *Storage) UpdateSession(ctx context.Context, session persistence.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]persistence.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].StartTime == sessions[j].StartTime {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})
	return sessions, nil
}

func (s *Storage) ListSessionsByIDs(ctx context.Context, ids []string) ([]persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sessions []persistence.Session
	for _, id := range ids {
		if session, ok := s.sessions[id]; ok {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Storage) CountSessions(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), nil
}

// --- TopicRepository ---

func (s *Storage) CreateTopic(ctx context.Context, topic persistence.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[topic.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.topics[topic.ID] = topic
	return nil
}

func (s *Storage) UpdateTopic(ctx context.Context, topic persistence.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[topic.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.topics[topic.ID] = topic
	return nil
}

func (s *Storage) GetTopic(ctx context.Context, id string) (persistence.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topic, ok := s.topics[id]
	if !ok {
		return persistence.Topic{}, persistence.ErrNotFound
	}
	return topic, nil
}

func (s *Storage) ListTopics(ctx context.Context) ([]persistence.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topics := make([]persistence.Topic, 0, len(s.topics))
	for _, topic := range s.topics {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Title == topics[j].Title {
			return topics[i].ID < topics[j].ID
		}
		return topics[i].Title < topics[j].Title
	})
	return topics, nil
}

func (s *Storage) ListTopicsByIDs(ctx context.Context, ids []string) ([]persistence.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var topics []persistence.Topic
	for _, id := range ids {
		if topic, ok := s.topics[id]; ok {
			topics = append(topics, topic)
		}
	}
	return topics, nil
}

func (s *Storage) DeleteTopic(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.topics, id)
	return nil
}

func (s *Storage) CountTopics(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.topics), nil
}

// --- ScheduleRepository ---

func (s *Storage) CreateSchedule(ctx context.Context, schedule persistence.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedules[schedule.ID]; ok {
		return persistence.ErrDuplicate
	}
	s.schedules[schedule.ID] = schedule
	return nil
}

func (s *Storage) UpdateSchedule(ctx context.Context, schedule persistence.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedules[schedule.ID]; !ok {
		return persistence.ErrNotFound
	}
	s.schedules[schedule.ID] = schedule
	return nil
}

func (s *Storage) GetSchedule(ctx context.Context, id string) (persistence.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schedule, ok := s.schedules[id]
	if !ok {
		return persistence.Schedule{}, persistence.ErrNotFound
	}
	return schedule, nil
}

func (s *Storage) ListSchedules(ctx context.Context) ([]persistence.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectSchedulesLocked(func(persistence.Schedule) bool { return true }), nil
}

func (s *Storage) ListSchedulesByReference(ctx context.Context, ref persistence.ScheduleReference, id string) ([]persistence.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var match func(persistence.Schedule) bool
	switch ref {
	case persistence.ReferenceSession:
		match = func(sched persistence.Schedule) bool { return sched.SessionID == id }
	case persistence.ReferenceRoom:
		match = func(sched persistence.Schedule) bool { return sched.RoomID == id }
	case persistence.ReferenceTopic:
		match = func(sched persistence.Schedule) bool { return sched.TopicID == id }
	case persistence.ReferencePresenter:
		match = func(sched persistence.Schedule) bool { return sched.PresenterID == id }
	default:
		return nil, persistence.ErrConstraintViolation
	}

	return s.collectSchedulesLocked(match), nil
}

func (s *Storage) collectSchedulesLocked(match func(persistence.Schedule) bool) []persistence.Schedule {
	var schedules []persistence.Schedule
	for _, schedule := range s.schedules {
		if match(schedule) {
			schedules = append(schedules, schedule)
		}
	}
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].ID < schedules[j].ID
	})
	return schedules
}

func (s *Storage) DeleteSchedule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedules[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.schedules, id)
	return nil
}

func (s *Storage) CountSchedules(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.schedules), nil
}
