package sqlite

import (
	"context"

	"github.com/example/event-registry/internal/persistence"
)

// TopicRepository implements persistence.TopicRepository over SQL.
type TopicRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewTopicRepository creates a SQL-backed topic repository.
func NewTopicRepository(pool *ConnectionPool) *TopicRepository {
	return &TopicRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

func (r *TopicRepository) CreateTopic(ctx context.Context, topic persistence.Topic) error {
	if topic.ID == "" {
		return persistence.ErrConstraintViolation
	}

	_, err := r.helper.Exec(ctx,
		`INSERT INTO topics (id, title, description) VALUES (?, ?, ?)`,
		topic.ID, topic.Title, topic.Description,
	)
	return r.mapper.MapError(err)
}

func (r *TopicRepository) UpdateTopic(ctx context.Context, topic persistence.Topic) error {
	result, err := r.helper.Exec(ctx,
		`UPDATE topics SET title = ?, description = ? WHERE id = ?`,
		topic.Title, topic.Description, topic.ID,
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *TopicRepository) GetTopic(ctx context.Context, id string) (persistence.Topic, error) {
	var topic persistence.Topic
	err := r.helper.QueryRow(ctx,
		`SELECT id, title, description FROM topics WHERE id = ?`, id,
	).Scan(&topic.ID, &topic.Title, &topic.Description)
	if err != nil {
		return persistence.Topic{}, r.mapper.MapError(err)
	}
	return topic, nil
}

// ListTopics returns all topics ordered by title.
func (r *TopicRepository) ListTopics(ctx context.Context) ([]persistence.Topic, error) {
	return r.queryTopics(ctx,
		`SELECT id, title, description FROM topics ORDER BY title ASC, id ASC`)
}

// ListTopicsByIDs returns the topics whose ids are in the given set. Missing
// ids are silently absent from the result.
func (r *TopicRepository) ListTopicsByIDs(ctx context.Context, ids []string) ([]persistence.Topic, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, title, description FROM topics
		WHERE id IN (` + inPlaceholders(len(ids)) + `)`
	return r.queryTopics(ctx, query, toAnySlice(ids)...)
}

func (r *TopicRepository) queryTopics(ctx context.Context, query string, args ...any) ([]persistence.Topic, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var topics []persistence.Topic
	for rows.Next() {
		var topic persistence.Topic
		if err := rows.Scan(&topic.ID, &topic.Title, &topic.Description); err != nil {
			return nil, r.mapper.MapError(err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}
	return topics, nil
}

func (r *TopicRepository) DeleteTopic(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return requireRowsAffected(result)
}

func (r *TopicRepository) CountTopics(ctx context.Context) (int, error) {
	return countRows(ctx, r.helper, r.mapper, "topics")
}
