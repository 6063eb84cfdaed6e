package services

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// FormSvc defines form and submission operations
type FormSvc interface {
	ListForms(ctx context.Context, userID, workspaceID string) ([]domain.Form, error)
	CreateForm(ctx context.Context, userID, workspaceID string, params domain.CreateFormParams) (*domain.Form, error)
	ListSubmissions(ctx context.Context, userID, workspaceID, formID string) ([]domain.Submission, error)
	SubmitForm(ctx context.Context, userID, workspaceID, formID string, answers map[string]any) (*domain.Submission, error)
	DeleteSubmission(ctx context.Context, userID, workspaceID, formID, submissionID string, confirm bool) error
}

// TrackerSvc defines issue and request operations
type TrackerSvc interface {
	ListIssues(ctx context.Context, userID, workspaceID string) ([]domain.Issue, error)
	CreateIssue(ctx context.Context, userID, workspaceID string, params domain.CreateIssueParams) (*domain.Issue, error)
	ListRequests(ctx context.Context, userID, workspaceID string) ([]domain.Request, error)
	CreateRequest(ctx context.Context, userID, workspaceID string, params domain.CreateRequestParams) (*domain.Request, error)
}

// AttachmentSvc defines file operations
type AttachmentSvc interface {
	ListAttachments(ctx context.Context, userID, workspaceID string) ([]domain.Attachment, error)
	UploadAttachment(ctx context.Context, userID, workspaceID string, file domain.FileUpload) (*domain.Attachment, error)

	// DownloadAttachment streams the file; the caller must close the body.
	DownloadAttachment(ctx context.Context, userID, workspaceID, attachmentID string) (*domain.AttachmentContent, error)
}

// AssistantSvc proxies AI chat questions
type AssistantSvc interface {
	Ask(ctx context.Context, userID, workspaceID string, params domain.AskParams) (*domain.AskAnswer, error)
}

// ContentSvcFacade combines all content-related service interfaces
type ContentSvcFacade interface {
	FormSvc
	TrackerSvc
	AttachmentSvc
	AssistantSvc
}
