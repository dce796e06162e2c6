package services

import (
	"context"
	"errors"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/models"

	"gorm.io/gorm"
)

// SubmissionRepository is the persistence boundary for whitepaper submissions.
type SubmissionRepository interface {
	Insert(ctx context.Context, submission *models.Submission) error
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	ListRecent(ctx context.Context, limit int) ([]models.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]models.Submission, error)
	UpdateContent(ctx context.Context, id, userID, title, content string) (int64, error)
	DeleteSubmitted(ctx context.Context, id, userID string) (int64, error)
	AdvanceStatus(ctx context.Context, id string, from, to models.SubmissionStatus) (int64, error)
}

// SubmissionStore implements SubmissionRepository on top of gorm.
type SubmissionStore struct {
	db *gorm.DB
}

func NewSubmissionStore(db *gorm.DB) *SubmissionStore {
	if db == nil {
		db = config.DB
	}
	return &SubmissionStore{db: db}
}

func (s *SubmissionStore) Insert(ctx context.Context, submission *models.Submission) error {
	if err := s.db.WithContext(ctx).Create(submission).Error; err != nil {
		return storeError("insert submission", err)
	}
	return nil
}

func (s *SubmissionStore) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, storeError("find submission", err)
	}
	return &submission, nil
}

// ListRecent returns submissions newest first. A non-positive limit returns all.
func (s *SubmissionStore) ListRecent(ctx context.Context, limit int) ([]models.Submission, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []models.Submission
	if err := q.Find(&items).Error; err != nil {
		return nil, storeError("list submissions", err)
	}
	return items, nil
}

func (s *SubmissionStore) ListByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	var items []models.Submission
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, storeError("list user submissions", err)
	}
	return items, nil
}

// UpdateContent rewrites title and content only while the row still belongs
// to userID and is still submitted. It returns the number of rows changed.
func (s *SubmissionStore) UpdateContent(ctx context.Context, id, userID, title, content string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, string(models.StatusSubmitted)).
		Updates(map[string]interface{}{
			"title":              title,
			"whitepaper_content": content,
		})
	if res.Error != nil {
		return 0, storeError("update submission", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteSubmitted removes the row only while it belongs to userID and is still submitted.
func (s *SubmissionStore) DeleteSubmitted(ctx context.Context, id, userID string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, string(models.StatusSubmitted)).
		Delete(&models.Submission{})
	if res.Error != nil {
		return 0, storeError("delete submission", res.Error)
	}
	return res.RowsAffected, nil
}

// AdvanceStatus moves a submission from one status to another if it is still at from.
func (s *SubmissionStore) AdvanceStatus(ctx context.Context, id string, from, to models.SubmissionStatus) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return 0, storeError("advance submission status", res.Error)
	}
	return res.RowsAffected, nil
}
