package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/localchef/bazaar-backend/pkg/errors"
	"github.com/localchef/bazaar-backend/models"
	"github.com/localchef/bazaar-backend/repository"
)

// TrackingService is the append-only tracking log. Every order status
// change is accompanied by one event. A failed append never blocks the
// caller's primary operation; the order flows treat it as best effort.
type TrackingService struct {
	repo repository.TrackingRepository
}

// NewTrackingService creates a TrackingService.
func NewTrackingService(repo repository.TrackingRepository) *TrackingService {
	return &TrackingService{repo: repo}
}

// Record appends one event for the tracking id. The human-readable
// details are derived from the status token by replacing underscores
// with spaces (order_pending -> "order pending").
func (s *TrackingService) Record(ctx context.Context, trackingID, status string) (*models.TrackingEvent, *apperrors.Error) {
	event := &models.TrackingEvent{
		TrackingID: trackingID,
		Status:     status,
		Details:    strings.ReplaceAll(status, "_", " "),
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Append(ctx, event); err != nil {
		return nil, apperrors.Storage(err)
	}
	return event, nil
}

// History returns all events for a tracking id, oldest first. Orphaned
// histories (no matching order) are legal and simply returned as-is.
func (s *TrackingService) History(ctx context.Context, trackingID string) ([]models.TrackingEvent, *apperrors.Error) {
	events, err := s.repo.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if events == nil {
		events = []models.TrackingEvent{}
	}
	return events, nil
}
