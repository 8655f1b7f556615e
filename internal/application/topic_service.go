package application

import (
	"context"
	"log/slog"

	"github.com/example/event-registry/internal/persistence"
)

// TopicService manages presentation topics.
type TopicService struct {
	topics      persistence.TopicRepository
	idGenerator func() string
	logger      *slog.Logger
}

// NewTopicService wires dependencies for topic operations.
func NewTopicService(topics persistence.TopicRepository, idGenerator func() string, logger *slog.Logger) *TopicService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TopicService{topics: topics, idGenerator: idGenerator, logger: logger}
}

func (s *TopicService) Create(ctx context.Context, input TopicInput) (persistence.Topic, error) {
	topic, vErr := buildTopic(input)
	if vErr.HasErrors() {
		return persistence.Topic{}, vErr
	}

	topic.ID = s.idGenerator()
	if err := s.topics.CreateTopic(ctx, topic); err != nil {
		return persistence.Topic{}, mapRepoError("create topic", err)
	}
	return topic, nil
}

func (s *TopicService) Update(ctx context.Context, id string, input TopicInput) (persistence.Topic, error) {
	existing, err := s.topics.GetTopic(ctx, id)
	if err != nil {
		return persistence.Topic{}, notFoundAs(KindTopic, id, "get topic", err)
	}

	topic, vErr := buildTopic(input)
	if vErr.HasErrors() {
		return persistence.Topic{}, vErr
	}

	topic.ID = existing.ID
	if err := s.topics.UpdateTopic(ctx, topic); err != nil {
		return persistence.Topic{}, mapRepoError("update topic", err)
	}
	return topic, nil
}

func (s *TopicService) Get(ctx context.Context, id string) (persistence.Topic, error) {
	topic, err := s.topics.GetTopic(ctx, id)
	if err != nil {
		return persistence.Topic{}, notFoundAs(KindTopic, id, "get topic", err)
	}
	return topic, nil
}

func (s *TopicService) List(ctx context.Context) ([]persistence.Topic, error) {
	topics, err := s.topics.ListTopics(ctx)
	if err != nil {
		return nil, mapRepoError("list topics", err)
	}
	return topics, nil
}

// Delete removes a topic. Schedules referencing it keep their dangling id.
func (s *TopicService) Delete(ctx context.Context, id string) error {
	if err := s.topics.DeleteTopic(ctx, id); err != nil {
		return notFoundAs(KindTopic, id, "delete topic", err)
	}
	return nil
}

func buildTopic(input TopicInput) (persistence.Topic, *ValidationError) {
	vErr := &ValidationError{}
	topic := persistence.Topic{
		Title:       requireText(vErr, "title", input.Title, maxTextLen),
		Description: requireText(vErr, "description", input.Description, maxDescriptionLen),
	}
	return topic, vErr
}
