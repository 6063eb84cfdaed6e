package dto

import "github.com/SscSPs/workspace_dashboard/internal/core/domain"

// --- Form DTOs ---

// CreateFormRequest defines data for creating a form.
type CreateFormRequest struct {
	Title       string             `json:"title" binding:"required,max=120"`
	Description string             `json:"description"`
	Fields      []FormFieldRequest `json:"fields" binding:"required,min=1,dive"`
}

// FormFieldRequest is one input of a form.
type FormFieldRequest struct {
	Label    string            `json:"label" binding:"required"`
	Type     domain.ColumnType `json:"type" binding:"required"`
	Required bool              `json:"required"`
	Options  []string          `json:"options"`
}

// ToParams converts the request to domain params.
func (r CreateFormRequest) ToParams() domain.CreateFormParams {
	fields := make([]domain.FormField, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = domain.FormField{Label: f.Label, Type: f.Type, Required: f.Required, Options: f.Options}
	}
	return domain.CreateFormParams{Title: r.Title, Description: r.Description, Fields: fields}
}

// SubmitFormRequest carries the answers of one submission.
type SubmitFormRequest struct {
	Answers map[string]any `json:"answers" binding:"required"`
}

// --- Tracker DTOs ---

// CreateIssueRequest defines data for reporting an issue.
type CreateIssueRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

// ToParams converts the request to domain params.
func (r CreateIssueRequest) ToParams() domain.CreateIssueParams {
	return domain.CreateIssueParams{Title: r.Title, Description: r.Description}
}

// CreateRequestRequest defines data for raising a request.
type CreateRequestRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

// ToParams converts the request to domain params.
func (r CreateRequestRequest) ToParams() domain.CreateRequestParams {
	return domain.CreateRequestParams{Title: r.Title, Description: r.Description}
}

// --- Assistant DTOs ---

// AskRequest is one AI chat question.
type AskRequest struct {
	Question string `json:"question" binding:"required,max=4000"`
}
