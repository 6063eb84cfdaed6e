package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
)

// --- Mock WorkspaceService ---
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Session(ctx context.Context, userID string) (*portssvc.SessionSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SessionSnapshot), args.Error(1)
}
func (m *MockWorkspaceService) ListWorkspaces(ctx context.Context, userID string) (*portssvc.SessionSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SessionSnapshot), args.Error(1)
}
func (m *MockWorkspaceService) OpenWorkspace(ctx context.Context, userID, workspaceID string) (*portssvc.SessionSnapshot, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.SessionSnapshot), args.Error(1)
}
func (m *MockWorkspaceService) ResolveRoute(ctx context.Context, userID, workspaceID string) (*portssvc.RouteResolution, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.RouteResolution), args.Error(1)
}
func (m *MockWorkspaceService) ClearSelection(ctx context.Context, userID string) *portssvc.SessionSnapshot {
	args := m.Called(ctx, userID)
	return args.Get(0).(*portssvc.SessionSnapshot)
}
func (m *MockWorkspaceService) CreateWorkspace(ctx context.Context, userID string, params domain.CreateWorkspaceParams) (*domain.Workspace, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) UpdateWorkspace(ctx context.Context, userID, workspaceID string, params domain.UpdateWorkspaceParams) (*domain.Workspace, error) {
	args := m.Called(ctx, userID, workspaceID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) DeleteWorkspace(ctx context.Context, userID, workspaceID string, confirm bool) error {
	args := m.Called(ctx, userID, workspaceID, confirm)
	return args.Error(0)
}
func (m *MockWorkspaceService) ListMembers(ctx context.Context, userID, workspaceID string) ([]domain.Member, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockWorkspaceService) InviteMember(ctx context.Context, userID, workspaceID string, params domain.InviteParams) (*domain.Invitation, error) {
	args := m.Called(ctx, userID, workspaceID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockWorkspaceService) RemoveMember(ctx context.Context, userID, workspaceID, targetUserID string, confirm bool) error {
	args := m.Called(ctx, userID, workspaceID, targetUserID, confirm)
	return args.Error(0)
}
func (m *MockWorkspaceService) UpdateMemberRole(ctx context.Context, userID, workspaceID, targetUserID string, role domain.Role) (*domain.Member, error) {
	args := m.Called(ctx, userID, workspaceID, targetUserID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockWorkspaceService) GetInvitation(ctx context.Context, userID, invitationID string) (*domain.Invitation, error) {
	args := m.Called(ctx, userID, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}
func (m *MockWorkspaceService) AcceptInvitation(ctx context.Context, userID, invitationID string) (*domain.Workspace, error) {
	args := m.Called(ctx, userID, invitationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) RejectInvitation(ctx context.Context, userID, invitationID string) error {
	args := m.Called(ctx, userID, invitationID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.WorkspaceSvcFacade = (*MockWorkspaceService)(nil)

// --- Mock TableService ---
type MockTableService struct {
	mock.Mock
}

func (m *MockTableService) ListRows(ctx context.Context, userID, workspaceID string) ([]domain.Row, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Row), args.Error(1)
}
func (m *MockTableService) AddRow(ctx context.Context, userID, workspaceID string, row domain.Row) (*domain.Row, error) {
	args := m.Called(ctx, userID, workspaceID, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Row), args.Error(1)
}
func (m *MockTableService) UpdateRow(ctx context.Context, userID, workspaceID, rowID string, patch map[string]any) error {
	args := m.Called(ctx, userID, workspaceID, rowID, patch)
	return args.Error(0)
}
func (m *MockTableService) RemoveRow(ctx context.Context, userID, workspaceID, rowID string, confirm bool) error {
	args := m.Called(ctx, userID, workspaceID, rowID, confirm)
	return args.Error(0)
}
func (m *MockTableService) SetColumns(ctx context.Context, userID, workspaceID string, columns []domain.Column) ([]domain.Column, error) {
	args := m.Called(ctx, userID, workspaceID, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Column), args.Error(1)
}
func (m *MockTableService) Pending(ctx context.Context, userID, workspaceID string) (*domain.BufferSnapshot, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BufferSnapshot), args.Error(1)
}
func (m *MockTableService) Flush(ctx context.Context, userID, workspaceID string) (*portssvc.FlushResult, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.FlushResult), args.Error(1)
}
func (m *MockTableService) CreateRow(ctx context.Context, userID, workspaceID string, row domain.Row) (*domain.Row, error) {
	args := m.Called(ctx, userID, workspaceID, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Row), args.Error(1)
}
func (m *MockTableService) SendRowMail(ctx context.Context, userID, workspaceID, rowID string, mail domain.RowMail) error {
	args := m.Called(ctx, userID, workspaceID, rowID, mail)
	return args.Error(0)
}
func (m *MockTableService) Board(ctx context.Context, userID, workspaceID string) (*domain.Board, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}
func (m *MockTableService) MoveCard(ctx context.Context, userID, workspaceID, rowID, toColumn string) (*domain.Board, error) {
	args := m.Called(ctx, userID, workspaceID, rowID, toColumn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Board), args.Error(1)
}

var _ portssvc.TableSvcFacade = (*MockTableService)(nil)

// --- Mock ContentService ---
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) ListForms(ctx context.Context, userID, workspaceID string) ([]domain.Form, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Form), args.Error(1)
}
func (m *MockContentService) CreateForm(ctx context.Context, userID, workspaceID string, params domain.CreateFormParams) (*domain.Form, error) {
	args := m.Called(ctx, userID, workspaceID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Form), args.Error(1)
}
func (m *MockContentService) ListSubmissions(ctx context.Context, userID, workspaceID, formID string) ([]domain.Submission, error) {
	args := m.Called(ctx, userID, workspaceID, formID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Submission), args.Error(1)
}
func (m *MockContentService) SubmitForm(ctx context.Context, userID, workspaceID, formID string, answers map[string]any) (*domain.Submission, error) {
	args := m.Called(ctx, userID, workspaceID, formID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}
func (m *MockContentService) DeleteSubmission(ctx context.Context, userID, workspaceID, formID, submissionID string, confirm bool) error {
	args := m.Called(ctx, userID, workspaceID, formID, submissionID, confirm)
	return args.Error(0)
}
func (m *MockContentService) ListIssues(ctx context.Context, userID, workspaceID string) ([]domain.Issue, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issue), args.Error(1)
}
func (m *MockContentService) CreateIssue(ctx context.Context, userID, workspaceID string, params domain.CreateIssueParams) (*domain.Issue, error) {
	args := m.Called(ctx, userID, workspaceID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issue), args.Error(1)
}
func (m *MockContentService) ListRequests(ctx context.Context, userID, workspaceID string) ([]domain.Request, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}
func (m *MockContentService) CreateRequest(ctx context.Context, userID, workspaceID string, params domain.CreateRequestParams) (*domain.Request, error) {
	args := m.Called(ctx, userID, workspaceID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockContentService) ListAttachments(ctx context.Context, userID, workspaceID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}
func (m *MockContentService) UploadAttachment(ctx context.Context, userID, workspaceID string, file domain.FileUpload) (*domain.Attachment, error) {
	args := m.Called(ctx, userID, workspaceID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}
func (m *MockContentService) DownloadAttachment(ctx context.Context, userID, workspaceID, attachmentID string) (*domain.AttachmentContent, error) {
	args := m.Called(ctx, userID, workspaceID, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttachmentContent), args.Error(1)
}
func (m *MockContentService) Ask(ctx context.Context, userID, workspaceID string, params domain.AskParams) (*domain.AskAnswer, error) {
	args := m.Called(ctx, userID, workspaceID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AskAnswer), args.Error(1)
}

var _ portssvc.ContentSvcFacade = (*MockContentService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) RowBreakdown(ctx context.Context, userID, workspaceID, column string) (*domain.Breakdown, error) {
	args := m.Called(ctx, userID, workspaceID, column)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Breakdown), args.Error(1)
}
func (m *MockReportingService) ProjectProgress(ctx context.Context, userID, workspaceID string) (*domain.ProjectProgress, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectProgress), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthService) Logout(ctx context.Context, userID string) (*domain.AuthResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthService) DeleteAccount(ctx context.Context, userID string, confirm bool) (*domain.AuthResult, error) {
	args := m.Called(ctx, userID, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthService) Me(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)
