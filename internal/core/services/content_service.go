package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
)

// ContentRepositories groups the backend repositories the content service uses.
type ContentRepositories struct {
	Forms       portsrepo.FormRepository
	Trackers    portsrepo.TrackerRepository
	Attachments portsrepo.AttachmentRepository
	Assistant   portsrepo.AssistantRepository
}

// contentService implements the ContentSvcFacade interface
type contentService struct {
	authorizer
	repos ContentRepositories
}

// NewContentService creates a new content service with the provided dependencies
func NewContentService(sessions *SessionRegistry, repos ContentRepositories) portssvc.ContentSvcFacade {
	return &contentService{
		authorizer: authorizer{sessions: sessions},
		repos:      repos,
	}
}

// Ensure contentService implements the ContentSvcFacade interface
var _ portssvc.ContentSvcFacade = (*contentService)(nil)

func (s *contentService) ListForms(ctx context.Context, userID, workspaceID string) ([]domain.Form, error) {
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	forms, err := s.repos.Forms.ListForms(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list forms", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return forms, nil
}

func (s *contentService) CreateForm(ctx context.Context, userID, workspaceID string, params domain.CreateFormParams) (*domain.Form, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent); err != nil {
		return nil, err
	}
	form, err := s.repos.Forms.CreateForm(ctx, workspaceID, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to create form", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.LogInfo(ctx, "Form created", slog.String("workspace_id", workspaceID), slog.String("form_id", form.FormID))
	return form, nil
}

func (s *contentService) ListSubmissions(ctx context.Context, userID, workspaceID, formID string) ([]domain.Submission, error) {
	if formID == "" {
		return nil, apperrors.NewValidationError("form id is required")
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	subs, err := s.repos.Forms.ListSubmissions(ctx, formID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list submissions", slog.String("form_id", formID))
		return nil, err
	}
	return subs, nil
}

// SubmitForm is open to every member, viewers included
func (s *contentService) SubmitForm(ctx context.Context, userID, workspaceID, formID string, answers map[string]any) (*domain.Submission, error) {
	if formID == "" {
		return nil, apperrors.NewValidationError("form id is required")
	}
	if len(answers) == 0 {
		return nil, apperrors.NewValidationError("answers are required")
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	sub, err := s.repos.Forms.SubmitForm(ctx, formID, answers)
	if err != nil {
		s.LogError(ctx, err, "Failed to submit form", slog.String("form_id", formID))
		return nil, err
	}
	return sub, nil
}

func (s *contentService) DeleteSubmission(ctx context.Context, userID, workspaceID, formID, submissionID string, confirm bool) error {
	if formID == "" || submissionID == "" {
		return apperrors.NewValidationError("form id and submission id are required")
	}
	if err := requireConfirmation(confirm, "deleting a submission"); err != nil {
		return err
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent); err != nil {
		return err
	}
	if err := s.repos.Forms.DeleteSubmission(ctx, formID, submissionID); err != nil {
		s.LogError(ctx, err, "Failed to delete submission",
			slog.String("form_id", formID),
			slog.String("submission_id", submissionID))
		return err
	}
	return nil
}

func (s *contentService) ListIssues(ctx context.Context, userID, workspaceID string) ([]domain.Issue, error) {
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	return s.repos.Trackers.ListIssues(ctx, workspaceID)
}

func (s *contentService) CreateIssue(ctx context.Context, userID, workspaceID string, params domain.CreateIssueParams) (*domain.Issue, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	access, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent)
	if err != nil {
		return nil, err
	}
	if err := requireProjectFocus(access.workspace); err != nil {
		return nil, err
	}
	issue, err := s.repos.Trackers.CreateIssue(ctx, workspaceID, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to create issue", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return issue, nil
}

func (s *contentService) ListRequests(ctx context.Context, userID, workspaceID string) ([]domain.Request, error) {
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	return s.repos.Trackers.ListRequests(ctx, workspaceID)
}

func (s *contentService) CreateRequest(ctx context.Context, userID, workspaceID string, params domain.CreateRequestParams) (*domain.Request, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	req, err := s.repos.Trackers.CreateRequest(ctx, workspaceID, params)
	if err != nil {
		s.LogError(ctx, err, "Failed to create request", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return req, nil
}

func (s *contentService) ListAttachments(ctx context.Context, userID, workspaceID string) ([]domain.Attachment, error) {
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	return s.repos.Attachments.ListAttachments(ctx, workspaceID)
}

func (s *contentService) UploadAttachment(ctx context.Context, userID, workspaceID string, file domain.FileUpload) (*domain.Attachment, error) {
	if file.FileName == "" || file.Content == nil {
		return nil, apperrors.NewValidationError("a file is required")
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionEditContent); err != nil {
		return nil, err
	}
	att, err := s.repos.Attachments.UploadAttachment(ctx, workspaceID, file)
	if err != nil {
		s.LogError(ctx, err, "Failed to upload attachment",
			slog.String("workspace_id", workspaceID),
			slog.String("file_name", file.FileName))
		return nil, err
	}
	return att, nil
}

func (s *contentService) DownloadAttachment(ctx context.Context, userID, workspaceID, attachmentID string) (*domain.AttachmentContent, error) {
	if attachmentID == "" {
		return nil, apperrors.NewValidationError("attachment id is required")
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	return s.repos.Attachments.DownloadAttachment(ctx, workspaceID, attachmentID)
}

// Ask forwards one chat question; rendering the answer is up to the view
func (s *contentService) Ask(ctx context.Context, userID, workspaceID string, params domain.AskParams) (*domain.AskAnswer, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, userID, workspaceID, permissions.ActionView); err != nil {
		return nil, err
	}
	answer, err := s.repos.Assistant.AskWorkspace(ctx, workspaceID, params)
	if err != nil {
		s.LogError(ctx, err, "AI ask failed", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return answer, nil
}
