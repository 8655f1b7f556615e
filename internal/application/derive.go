package application

import "github.com/example/event-registry/internal/persistence"

// Derived presentation values. These are pure functions over plain value
// structures, invoked by the presentation layer rather than carried as
// methods on the entities themselves.

// ResourceURL returns the catalog URL for an entity.
func ResourceURL(kind EntityKind, id string) string {
	return "/index/" + pathSegment(kind) + "/" + id
}

func pathSegment(kind EntityKind) string {
	switch kind {
	case KindHighSchool:
		return "highschools"
	case KindParticipant:
		return "participants"
	case KindPresenter:
		return "presenters"
	case KindRoom:
		return "rooms"
	case KindSession:
		return "sessions"
	case KindTopic:
		return "topics"
	case KindSchedule:
		return "schedules"
	default:
		return string(kind)
	}
}

// PersonName renders a display name as "last, first".
func PersonName(lastName, firstName string) string {
	return lastName + ", " + firstName
}

// SessionTimeRange renders a session's slot as "start - end",
// e.g. "08:00 - 09:00".
func SessionTimeRange(session persistence.Session) string {
	return session.StartTime + " - " + session.EndTime
}
