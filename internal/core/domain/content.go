package domain

import (
	"io"
	"time"
)

// FormField describes one input of a form built in the forms builder.
type FormField struct {
	Label    string     `json:"label" validate:"required"`
	Type     ColumnType `json:"type" validate:"required"`
	Required bool       `json:"required,omitempty"`
	Options  []string   `json:"options,omitempty"`
}

// Form is a public intake form attached to a workspace.
type Form struct {
	FormID      string      `json:"_id"`
	WorkspaceID string      `json:"workspace"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields"`
	Timestamps
}

// CreateFormParams is the body of POST /workspaces/:id/forms.
type CreateFormParams struct {
	Title       string      `json:"title" validate:"required,min=1,max=120"`
	Description string      `json:"description,omitempty"`
	Fields      []FormField `json:"fields" validate:"required,min=1,dive"`
}

// Submission is one filled-in form.
type Submission struct {
	SubmissionID string         `json:"_id"`
	FormID       string         `json:"form"`
	Answers      map[string]any `json:"answers"`
	SubmittedAt  time.Time      `json:"submittedAt"`
}

// IssueStatus is the lifecycle of a PM issue.
type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in-progress"
	IssueClosed     IssueStatus = "closed"
)

// Issue is a bug or problem report in a PM workspace.
type Issue struct {
	IssueID     string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      IssueStatus `json:"status"`
	Reporter    UserRef     `json:"reporter"`
	Timestamps
}

// CreateIssueParams is the body of POST /workspaces/:id/issues.
type CreateIssueParams struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
}

// Request is a feature or access request raised inside a workspace.
type Request struct {
	RequestID   string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	RequestedBy UserRef `json:"requestedBy"`
	Timestamps
}

// CreateRequestParams is the body of POST /workspaces/:id/requests.
type CreateRequestParams struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
}

// Attachment is a file stored against a workspace.
type Attachment struct {
	AttachmentID string    `json:"_id"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	Size         int64     `json:"size"`
	UploadedBy   UserRef   `json:"uploadedBy"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// AskParams is the body of POST /ai/workspace/:id/ask.
type AskParams struct {
	Question string `json:"question" validate:"required,max=4000"`
}

// AskAnswer is the AI chat reply.
type AskAnswer struct {
	Answer string `json:"answer"`
}

// FileUpload is an attachment being sent to the backend as multipart form data.
type FileUpload struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

// AttachmentContent is a streamed attachment download. Callers must close Body.
type AttachmentContent struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}
