package remote

import (
	"context"
	"net/http"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
)

// ListForms calls GET /workspaces/:id/forms.
func (c *Client) ListForms(ctx context.Context, workspaceID string) ([]domain.Form, error) {
	out := []domain.Form{}
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces", workspaceID, "forms"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateForm calls POST /workspaces/:id/forms.
func (c *Client) CreateForm(ctx context.Context, workspaceID string, params domain.CreateFormParams) (*domain.Form, error) {
	var out domain.Form
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces", workspaceID, "forms"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSubmissions calls GET /forms/:id/submissions.
func (c *Client) ListSubmissions(ctx context.Context, formID string) ([]domain.Submission, error) {
	out := []domain.Submission{}
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("forms", formID, "submissions"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type submitBody struct {
	Answers map[string]any `json:"answers"`
}

// SubmitForm calls POST /forms/:id/submit.
func (c *Client) SubmitForm(ctx context.Context, formID string, answers map[string]any) (*domain.Submission, error) {
	var out domain.Submission
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("forms", formID, "submit"), submitBody{Answers: answers}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSubmission calls DELETE /forms/:id/submissions/:submissionId.
func (c *Client) DeleteSubmission(ctx context.Context, formID, submissionID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, c.endpoint("forms", formID, "submissions", submissionID), nil, nil)
	return err
}

// ListIssues calls GET /workspaces/:id/issues.
func (c *Client) ListIssues(ctx context.Context, workspaceID string) ([]domain.Issue, error) {
	out := []domain.Issue{}
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces", workspaceID, "issues"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateIssue calls POST /workspaces/:id/issues.
func (c *Client) CreateIssue(ctx context.Context, workspaceID string, params domain.CreateIssueParams) (*domain.Issue, error) {
	var out domain.Issue
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces", workspaceID, "issues"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRequests calls GET /workspaces/:id/requests.
func (c *Client) ListRequests(ctx context.Context, workspaceID string) ([]domain.Request, error) {
	out := []domain.Request{}
	if _, err := c.doJSON(ctx, http.MethodGet, c.endpoint("workspaces", workspaceID, "requests"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRequest calls POST /workspaces/:id/requests.
func (c *Client) CreateRequest(ctx context.Context, workspaceID string, params domain.CreateRequestParams) (*domain.Request, error) {
	var out domain.Request
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("workspaces", workspaceID, "requests"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AskWorkspace calls POST /ai/workspace/:id/ask.
func (c *Client) AskWorkspace(ctx context.Context, workspaceID string, params domain.AskParams) (*domain.AskAnswer, error) {
	var out domain.AskAnswer
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("ai", "workspace", workspaceID, "ask"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
