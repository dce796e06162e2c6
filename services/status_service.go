package services

import (
	"context"
	"fmt"
	"strings"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/models"

	"go.uber.org/zap"
)

// statusSynonyms maps operator input onto canonical statuses.
var statusSynonyms = map[string]models.SubmissionStatus{
	"submitted":    models.StatusSubmitted,
	"under_review": models.StatusUnderReview,
	"under review": models.StatusUnderReview,
	"review":       models.StatusUnderReview,
	"approved":     models.StatusApproved,
	"funded":       models.StatusFunded,
}

// ParseStatus resolves a status name, accepting labels such as "Under Review".
func ParseStatus(raw string) (models.SubmissionStatus, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	if status, ok := statusSynonyms[key]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// StatusService advances submissions through the review lifecycle. It is
// used by operators only; the public API never changes status.
type StatusService struct {
	store    SubmissionRepository
	notifier Notifier
}

func NewStatusService(store SubmissionRepository, notifier Notifier) *StatusService {
	if store == nil {
		store = NewSubmissionStore(nil)
	}
	if notifier == nil {
		notifier = DefaultNotifier()
	}
	return &StatusService{store: store, notifier: notifier}
}

// Advance moves submission id forward to status to. Moving backwards or
// staying put is refused. The write is conditioned on the status read here,
// so a concurrent change makes it fail instead of skipping a stage check.
func (s *StatusService) Advance(ctx context.Context, id string, to models.SubmissionStatus) (*models.Submission, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if to.Rank() <= current.Status.Rank() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrStatusRegression, current.Status, to)
	}

	affected, err := s.store.AdvanceStatus(ctx, id, current.Status, to)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("submission %s changed status concurrently", id)
	}

	from := current.Status
	current.Status = to
	statusTransitions.WithLabelValues(string(to)).Inc()
	config.Logger.Info("submission status advanced",
		zap.String("submission_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	s.notifier.Notify(ctx, NewProposalEvent(EventStatusChanged, current))
	return current, nil
}
