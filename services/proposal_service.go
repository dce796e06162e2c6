package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/models"
	"whitepaper-portal-api/utils"

	"go.uber.org/zap"
)

// DefaultShowcaseLimit caps the public gallery.
const DefaultShowcaseLimit = 20

// MaxTitleLength matches the width of the title column.
const MaxTitleLength = 500

const cardExcerptLength = 200

// ProposalInput carries the user-editable fields of a whitepaper.
type ProposalInput struct {
	Title   string `json:"title"`
	Content string `json:"whitepaper_content"`
}

func (in ProposalInput) validate() error {
	if in.Title == "" || in.Content == "" {
		return ErrEmptyField
	}
	if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func (in ProposalInput) normalized() ProposalInput {
	return ProposalInput{
		Title:   utils.SanitizeInput(in.Title),
		Content: utils.SanitizeInput(in.Content),
	}
}

// ProposalSummary is one row of the signed-in user's proposal list.
type ProposalSummary struct {
	models.Submission
	StatusLabel string `json:"status_label"`
	StatusClass string `json:"status_class"`
	CanEdit     bool   `json:"can_edit"`
	CanDelete   bool   `json:"can_delete"`
}

// ShowcaseCard is a public gallery entry. It never exposes the submitter's email.
type ShowcaseCard struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Excerpt     string                  `json:"excerpt"`
	UserName    string                  `json:"user_name"`
	Status      models.SubmissionStatus `json:"status"`
	StatusLabel string                  `json:"status_label"`
	StatusClass string                  `json:"status_class"`
	CreatedAt   string                  `json:"created_at"`
}

// PublicProposal is the public single-proposal view.
type PublicProposal struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	UserName    string                  `json:"user_name"`
	Status      models.SubmissionStatus `json:"status"`
	StatusLabel string                  `json:"status_label"`
	StatusClass string                  `json:"status_class"`
	CreatedAt   string                  `json:"created_at"`
	Content     string                  `json:"whitepaper_content"`
	Rendered    utils.RenderedContent   `json:"rendered"`
}

// EditView is what the edit screen needs: the record and its live checklist.
type EditView struct {
	Submission *models.Submission   `json:"submission"`
	Sections   []utils.SectionCheck `json:"sections"`
}

// ProposalService enforces who may create, change, and withdraw proposals.
type ProposalService struct {
	store    SubmissionRepository
	notifier Notifier
	sections []utils.Section
}

func NewProposalService(store SubmissionRepository, notifier Notifier) *ProposalService {
	if store == nil {
		store = NewSubmissionStore(nil)
	}
	if notifier == nil {
		notifier = DefaultNotifier()
	}
	return &ProposalService{
		store:    store,
		notifier: notifier,
		sections: utils.RequiredSections,
	}
}

// CheckSections runs the section checklist over content.
func (s *ProposalService) CheckSections(content string) []utils.SectionCheck {
	return utils.CheckSections(content, s.sections)
}

// Create stores a new whitepaper for identity. Nothing is written unless the
// identity is signed in, both fields are present and every section is found.
func (s *ProposalService) Create(ctx context.Context, identity models.Identity, input ProposalInput) (*models.Submission, error) {
	if !identity.Authenticated() {
		recordRejection("unauthenticated")
		return nil, ErrUnauthenticated
	}

	input = input.normalized()
	if err := input.validate(); err != nil {
		if errors.Is(err, ErrTitleTooLong) {
			recordRejection("title_too_long")
		} else {
			recordRejection("empty_field")
		}
		return nil, err
	}

	checks := s.CheckSections(input.Content)
	if !utils.AllSectionsPresent(checks) {
		recordRejection("missing_sections")
		return nil, &MissingSectionsError{Checks: checks}
	}

	submission := &models.Submission{
		UserID:            identity.UserID,
		UserEmail:         identity.Email,
		UserName:          identity.DisplayName(),
		Title:             input.Title,
		WhitepaperContent: input.Content,
		Status:            models.StatusSubmitted,
	}
	if err := s.store.Insert(ctx, submission); err != nil {
		s.logStoreFailure("create proposal", err, zap.String("user_id", identity.UserID))
		return nil, err
	}

	proposalsCreated.Inc()
	s.notifier.Notify(ctx, NewProposalEvent(EventSubmitted, submission))
	return submission, nil
}

// ListMine returns the caller's proposals newest first.
func (s *ProposalService) ListMine(ctx context.Context, identity models.Identity) ([]ProposalSummary, error) {
	if !identity.Authenticated() {
		return nil, ErrUnauthenticated
	}

	items, err := s.store.ListByUser(ctx, identity.UserID)
	if err != nil {
		s.logStoreFailure("list proposals", err, zap.String("user_id", identity.UserID))
		return nil, err
	}

	summaries := make([]ProposalSummary, 0, len(items))
	for i := range items {
		summaries = append(summaries, ProposalSummary{
			Submission:  items[i],
			StatusLabel: items[i].Status.Label(),
			StatusClass: items[i].Status.CSSClass(),
			CanEdit:     items[i].CanEdit(),
			CanDelete:   items[i].CanDelete(),
		})
	}
	return summaries, nil
}

// Get loads one proposal by id.
func (s *ProposalService) Get(ctx context.Context, id string) (*models.Submission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSubmissionNotFound
	}

	submission, err := s.store.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrSubmissionNotFound) {
			s.logStoreFailure("get proposal", err, zap.String("submission_id", id))
		}
		return nil, err
	}
	return submission, nil
}

// PublicView renders a proposal for anonymous readers.
func (s *ProposalService) PublicView(ctx context.Context, id string, opts utils.RenderOptions) (*PublicProposal, error) {
	submission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PublicProposal{
		ID:          submission.ID,
		Title:       submission.Title,
		UserName:    submission.UserName,
		Status:      submission.Status,
		StatusLabel: submission.Status.Label(),
		StatusClass: submission.Status.CSSClass(),
		CreatedAt:   utils.FormatDisplayDate(submission.CreatedAt),
		Content:     submission.WhitepaperContent,
		Rendered:    utils.Render(submission.WhitepaperContent, opts),
	}, nil
}

// Showcase returns the newest proposals as gallery cards.
func (s *ProposalService) Showcase(ctx context.Context, limit int) ([]ShowcaseCard, error) {
	if limit <= 0 {
		limit = DefaultShowcaseLimit
	}

	items, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		s.logStoreFailure("load showcase", err)
		return nil, err
	}

	cards := make([]ShowcaseCard, 0, len(items))
	for _, item := range items {
		cards = append(cards, ShowcaseCard{
			ID:          item.ID,
			Title:       item.Title,
			Excerpt:     utils.TruncateContent(item.WhitepaperContent, cardExcerptLength),
			UserName:    item.UserName,
			Status:      item.Status,
			StatusLabel: item.Status.Label(),
			StatusClass: item.Status.CSSClass(),
			CreatedAt:   utils.FormatShortDate(item.CreatedAt),
		})
	}
	return cards, nil
}

// LoadForEdit returns the proposal if identity may still change it. Other
// users' proposals are reported as not found.
func (s *ProposalService) LoadForEdit(ctx context.Context, identity models.Identity, id string) (*EditView, error) {
	if !identity.Authenticated() {
		return nil, ErrUnauthenticated
	}

	submission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !submission.IsOwnedBy(identity.UserID) {
		return nil, ErrSubmissionNotFound
	}
	if !submission.CanEdit() {
		return nil, ErrNotEditable
	}

	return &EditView{
		Submission: submission,
		Sections:   s.CheckSections(submission.WhitepaperContent),
	}, nil
}

// SaveEdit writes new title and content. The write only lands while the row
// is still submitted; the returned checklist is informational.
func (s *ProposalService) SaveEdit(ctx context.Context, identity models.Identity, id string, input ProposalInput) (*EditView, error) {
	if !identity.Authenticated() {
		return nil, ErrUnauthenticated
	}

	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	affected, err := s.store.UpdateContent(ctx, id, identity.UserID, input.Title, input.Content)
	if err != nil {
		s.logStoreFailure("update proposal", err, zap.String("submission_id", id))
		return nil, err
	}
	if affected == 0 {
		if err := s.explainNoop(ctx, identity, id); err != nil {
			return nil, err
		}
		return nil, storeError("update submission", errors.New("no rows updated"))
	}

	submission, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, NewProposalEvent(EventUpdated, submission))

	return &EditView{
		Submission: submission,
		Sections:   s.CheckSections(submission.WhitepaperContent),
	}, nil
}

// Delete withdraws a proposal that identity owns and that is still submitted.
func (s *ProposalService) Delete(ctx context.Context, identity models.Identity, id string) error {
	if !identity.Authenticated() {
		return ErrUnauthenticated
	}

	affected, err := s.store.DeleteSubmitted(ctx, id, identity.UserID)
	if err != nil {
		s.logStoreFailure("delete proposal", err, zap.String("submission_id", id))
		return err
	}
	if affected == 0 {
		if err := s.explainNoop(ctx, identity, id); err != nil {
			return err
		}
		return storeError("delete submission", errors.New("no rows deleted"))
	}

	s.notifier.Notify(ctx, ProposalEvent{
		Type:         EventDeleted,
		SubmissionID: id,
		UserID:       identity.UserID,
		Status:       models.StatusSubmitted,
	})
	return nil
}

// explainNoop works out why a guarded write touched no rows. A nil result
// means the row is still owned by identity and still submitted.
func (s *ProposalService) explainNoop(ctx context.Context, identity models.Identity, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.IsOwnedBy(identity.UserID) {
		return ErrSubmissionNotFound
	}
	if !current.CanEdit() {
		return ErrNotEditable
	}
	return nil
}

func (s *ProposalService) logStoreFailure(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	config.Logger.Error(op+" failed", fields...)
}
