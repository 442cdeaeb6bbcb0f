package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/internal/repository"
)

//go:generate mockgen -source=service.go -destination=mocks/publisher_mock.go -package=service_mocks

// EventPublisher delivers overdue notices to the notification collaborator.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

type Service struct {
	log       *zap.Logger
	repo      repository.Repository
	publisher EventPublisher
}

func NewService(repo repository.Repository, publisher EventPublisher, log *zap.Logger) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		publisher: publisher,
	}
}
