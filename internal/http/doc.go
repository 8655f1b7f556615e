// Package http provides the JSON API for the event registration catalog.
//
// All catalog routes live under the /index base path:
//   - GET /index: dashboard summary with per-collection record counts.
//   - GET/POST /index/<collection>, GET/PUT/DELETE /index/<collection>/{id}
//     for highschools, participants, presenters, rooms, sessions, topics and
//     schedules. Detail GETs on sessions, rooms, topics and presenters also
//     return every schedule entry referencing the record, with its four
//     references expanded inline.
//   - GET / redirects to /index.
//
// Self-registration is public: GET /register returns the high school list
// for the form, POST /register creates a participant, GET /register/submitted
// confirms. GET /metrics exposes Prometheus metrics.
//
// Request/response DTOs live alongside their respective handlers so tests
// and documentation share the same ground truth.
package http
