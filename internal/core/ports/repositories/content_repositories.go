package repositories

import (
	"context"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// FormRepository defines operations on forms and their submissions
type FormRepository interface {
	ListForms(ctx context.Context, workspaceID string) ([]domain.Form, error)
	CreateForm(ctx context.Context, workspaceID string, params domain.CreateFormParams) (*domain.Form, error)
	ListSubmissions(ctx context.Context, formID string) ([]domain.Submission, error)
	SubmitForm(ctx context.Context, formID string, answers map[string]any) (*domain.Submission, error)
	DeleteSubmission(ctx context.Context, formID, submissionID string) error
}

// TrackerRepository defines operations on issues and requests of a workspace
type TrackerRepository interface {
	ListIssues(ctx context.Context, workspaceID string) ([]domain.Issue, error)
	CreateIssue(ctx context.Context, workspaceID string, params domain.CreateIssueParams) (*domain.Issue, error)
	ListRequests(ctx context.Context, workspaceID string) ([]domain.Request, error)
	CreateRequest(ctx context.Context, workspaceID string, params domain.CreateRequestParams) (*domain.Request, error)
}

// AttachmentRepository defines file operations of a workspace
type AttachmentRepository interface {
	ListAttachments(ctx context.Context, workspaceID string) ([]domain.Attachment, error)
	UploadAttachment(ctx context.Context, workspaceID string, file domain.FileUpload) (*domain.Attachment, error)

	// DownloadAttachment streams the file; the caller must close the returned body.
	DownloadAttachment(ctx context.Context, workspaceID, attachmentID string) (*domain.AttachmentContent, error)
}

// AssistantRepository proxies questions to the backend AI endpoint
type AssistantRepository interface {
	AskWorkspace(ctx context.Context, workspaceID string, params domain.AskParams) (*domain.AskAnswer, error)
}
