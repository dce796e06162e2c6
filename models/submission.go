package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionStatus is the coarse lifecycle stage of a whitepaper submission.
type SubmissionStatus string

const (
	StatusSubmitted   SubmissionStatus = "submitted"
	StatusUnderReview SubmissionStatus = "under_review"
	StatusApproved    SubmissionStatus = "approved"
	StatusFunded      SubmissionStatus = "funded"
)

// SubmissionStatuses lists every status in lifecycle order.
var SubmissionStatuses = []SubmissionStatus{
	StatusSubmitted,
	StatusUnderReview,
	StatusApproved,
	StatusFunded,
}

// Valid reports whether s is one of the known lifecycle stages.
func (s SubmissionStatus) Valid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of s in the lifecycle, or -1 for unknown values.
func (s SubmissionStatus) Rank() int {
	for i, status := range SubmissionStatuses {
		if status == s {
			return i
		}
	}
	return -1
}

// Label turns "under_review" into "Under Review".
func (s SubmissionStatus) Label() string {
	words := strings.Split(strings.Replace(string(s), "_", " ", 1), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// CSSClass returns the badge class used by the site. Unknown values fall back to
// the submitted badge.
func (s SubmissionStatus) CSSClass() string {
	switch s {
	case StatusUnderReview:
		return "status-under-review"
	case StatusApproved:
		return "status-approved"
	case StatusFunded:
		return "status-funded"
	default:
		return "status-submitted"
	}
}

// Submission is a single whitepaper proposal.
type Submission struct {
	ID                string           `json:"id" gorm:"column:id;type:char(36);primaryKey"`
	CreatedAt         time.Time        `json:"created_at" gorm:"column:created_at;autoCreateTime;index"`
	UserID            string           `json:"user_id" gorm:"column:user_id;type:varchar(191);not null;index"`
	UserEmail         string           `json:"user_email" gorm:"column:user_email;type:varchar(320)"`
	UserName          string           `json:"user_name" gorm:"column:user_name;type:varchar(255)"`
	Title             string           `json:"title" gorm:"column:title;type:varchar(500);not null"`
	WhitepaperContent string           `json:"whitepaper_content" gorm:"column:whitepaper_content;type:longtext;not null"`
	Status            SubmissionStatus `json:"status" gorm:"column:status;type:varchar(32);not null;default:submitted;index"`
}

func (Submission) TableName() string { return "whitepaper_submissions" }

// BeforeCreate assigns the opaque identifier when the caller did not.
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// CanEdit reports whether title and content may still be changed.
func (s *Submission) CanEdit() bool {
	return s.Status == StatusSubmitted
}

// CanDelete reports whether the submission may still be withdrawn.
func (s *Submission) CanDelete() bool {
	return s.Status == StatusSubmitted
}

// IsOwnedBy reports whether the submission was created by userID.
func (s *Submission) IsOwnedBy(userID string) bool {
	return userID != "" && s.UserID == userID
}
