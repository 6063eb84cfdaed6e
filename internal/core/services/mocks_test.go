package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
)

// MockRemote is a mock type for the RemoteProvider interface
type MockRemote struct {
	mock.Mock
}

var _ portsrepo.RemoteProvider = (*MockRemote)(nil)

func (m *MockRemote) ListWorkspaces(ctx context.Context) (*domain.WorkspaceList, error) {
	args := m.Called(ctx)
	var list *domain.WorkspaceList
	if args.Get(0) != nil {
		list = args.Get(0).(*domain.WorkspaceList)
	}
	return list, args.Error(1)
}

func (m *MockRemote) GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace).Clone()
	}
	return ws, args.Error(1)
}

func (m *MockRemote) CreateWorkspace(ctx context.Context, params domain.CreateWorkspaceParams) (*domain.Workspace, error) {
	args := m.Called(ctx, params)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockRemote) UpdateWorkspace(ctx context.Context, workspaceID string, params domain.UpdateWorkspaceParams) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID, params)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockRemote) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

func (m *MockRemote) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	args := m.Called(ctx, workspaceID)
	var members []domain.Member
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Member)
	}
	return members, args.Error(1)
}

func (m *MockRemote) InviteMember(ctx context.Context, workspaceID string, params domain.InviteParams) (*domain.Invitation, error) {
	args := m.Called(ctx, workspaceID, params)
	var inv *domain.Invitation
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invitation)
	}
	return inv, args.Error(1)
}

func (m *MockRemote) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

func (m *MockRemote) UpdateMemberRole(ctx context.Context, workspaceID, userID string, role domain.Role) (*domain.Member, error) {
	args := m.Called(ctx, workspaceID, userID, role)
	var member *domain.Member
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.Member)
	}
	return member, args.Error(1)
}

func (m *MockRemote) GetInvitation(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	args := m.Called(ctx, invitationID)
	var inv *domain.Invitation
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invitation)
	}
	return inv, args.Error(1)
}

func (m *MockRemote) AcceptInvitation(ctx context.Context, invitationID string) (*domain.Workspace, error) {
	args := m.Called(ctx, invitationID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockRemote) RejectInvitation(ctx context.Context, invitationID string) error {
	args := m.Called(ctx, invitationID)
	return args.Error(0)
}

func (m *MockRemote) ListRows(ctx context.Context, workspaceID string) ([]domain.Row, error) {
	args := m.Called(ctx, workspaceID)
	var rows []domain.Row
	if args.Get(0) != nil {
		for _, r := range args.Get(0).([]domain.Row) {
			rows = append(rows, r.Clone())
		}
	}
	return rows, args.Error(1)
}

func (m *MockRemote) CreateRow(ctx context.Context, workspaceID string, row domain.Row) (*domain.Row, error) {
	args := m.Called(ctx, workspaceID, row)
	var out *domain.Row
	if args.Get(0) != nil {
		out = args.Get(0).(*domain.Row)
	}
	return out, args.Error(1)
}

func (m *MockRemote) SyncTable(ctx context.Context, workspaceID string, changes domain.ChangeSet) (*domain.Table, error) {
	args := m.Called(ctx, workspaceID, changes)
	var table *domain.Table
	if args.Get(0) != nil {
		table = args.Get(0).(*domain.Table)
	}
	return table, args.Error(1)
}

func (m *MockRemote) SendRowMail(ctx context.Context, workspaceID, rowID string, mail domain.RowMail) error {
	args := m.Called(ctx, workspaceID, rowID, mail)
	return args.Error(0)
}

func (m *MockRemote) ListForms(ctx context.Context, workspaceID string) ([]domain.Form, error) {
	args := m.Called(ctx, workspaceID)
	var forms []domain.Form
	if args.Get(0) != nil {
		forms = args.Get(0).([]domain.Form)
	}
	return forms, args.Error(1)
}

func (m *MockRemote) CreateForm(ctx context.Context, workspaceID string, params domain.CreateFormParams) (*domain.Form, error) {
	args := m.Called(ctx, workspaceID, params)
	var form *domain.Form
	if args.Get(0) != nil {
		form = args.Get(0).(*domain.Form)
	}
	return form, args.Error(1)
}

func (m *MockRemote) ListSubmissions(ctx context.Context, formID string) ([]domain.Submission, error) {
	args := m.Called(ctx, formID)
	var subs []domain.Submission
	if args.Get(0) != nil {
		subs = args.Get(0).([]domain.Submission)
	}
	return subs, args.Error(1)
}

func (m *MockRemote) SubmitForm(ctx context.Context, formID string, answers map[string]any) (*domain.Submission, error) {
	args := m.Called(ctx, formID, answers)
	var sub *domain.Submission
	if args.Get(0) != nil {
		sub = args.Get(0).(*domain.Submission)
	}
	return sub, args.Error(1)
}

func (m *MockRemote) DeleteSubmission(ctx context.Context, formID, submissionID string) error {
	args := m.Called(ctx, formID, submissionID)
	return args.Error(0)
}

func (m *MockRemote) ListIssues(ctx context.Context, workspaceID string) ([]domain.Issue, error) {
	args := m.Called(ctx, workspaceID)
	var issues []domain.Issue
	if args.Get(0) != nil {
		issues = args.Get(0).([]domain.Issue)
	}
	return issues, args.Error(1)
}

func (m *MockRemote) CreateIssue(ctx context.Context, workspaceID string, params domain.CreateIssueParams) (*domain.Issue, error) {
	args := m.Called(ctx, workspaceID, params)
	var issue *domain.Issue
	if args.Get(0) != nil {
		issue = args.Get(0).(*domain.Issue)
	}
	return issue, args.Error(1)
}

func (m *MockRemote) ListRequests(ctx context.Context, workspaceID string) ([]domain.Request, error) {
	args := m.Called(ctx, workspaceID)
	var reqs []domain.Request
	if args.Get(0) != nil {
		reqs = args.Get(0).([]domain.Request)
	}
	return reqs, args.Error(1)
}

func (m *MockRemote) CreateRequest(ctx context.Context, workspaceID string, params domain.CreateRequestParams) (*domain.Request, error) {
	args := m.Called(ctx, workspaceID, params)
	var req *domain.Request
	if args.Get(0) != nil {
		req = args.Get(0).(*domain.Request)
	}
	return req, args.Error(1)
}

func (m *MockRemote) ListAttachments(ctx context.Context, workspaceID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, workspaceID)
	var atts []domain.Attachment
	if args.Get(0) != nil {
		atts = args.Get(0).([]domain.Attachment)
	}
	return atts, args.Error(1)
}

func (m *MockRemote) UploadAttachment(ctx context.Context, workspaceID string, file domain.FileUpload) (*domain.Attachment, error) {
	args := m.Called(ctx, workspaceID, file)
	var att *domain.Attachment
	if args.Get(0) != nil {
		att = args.Get(0).(*domain.Attachment)
	}
	return att, args.Error(1)
}

func (m *MockRemote) DownloadAttachment(ctx context.Context, workspaceID, attachmentID string) (*domain.AttachmentContent, error) {
	args := m.Called(ctx, workspaceID, attachmentID)
	var content *domain.AttachmentContent
	if args.Get(0) != nil {
		content = args.Get(0).(*domain.AttachmentContent)
	}
	return content, args.Error(1)
}

func (m *MockRemote) AskWorkspace(ctx context.Context, workspaceID string, params domain.AskParams) (*domain.AskAnswer, error) {
	args := m.Called(ctx, workspaceID, params)
	var answer *domain.AskAnswer
	if args.Get(0) != nil {
		answer = args.Get(0).(*domain.AskAnswer)
	}
	return answer, args.Error(1)
}

func (m *MockRemote) Me(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockRemote) Login(ctx context.Context, creds domain.LoginCredentials) (*domain.AuthResult, error) {
	args := m.Called(ctx, creds)
	var res *domain.AuthResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.AuthResult)
	}
	return res, args.Error(1)
}

func (m *MockRemote) Logout(ctx context.Context) (*domain.AuthResult, error) {
	args := m.Called(ctx)
	var res *domain.AuthResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.AuthResult)
	}
	return res, args.Error(1)
}

func (m *MockRemote) DeleteAccount(ctx context.Context) (*domain.AuthResult, error) {
	args := m.Called(ctx)
	var res *domain.AuthResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.AuthResult)
	}
	return res, args.Error(1)
}

// memDrafts is an in-memory DraftRepository.
type memDrafts struct {
	mu      sync.Mutex
	drafts  map[portsrepo.DraftKey][]byte
	deleted int
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: make(map[portsrepo.DraftKey][]byte)}
}

func (d *memDrafts) SaveDraft(_ context.Context, key portsrepo.DraftKey, payload []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drafts[key] = append([]byte(nil), payload...)
	return nil
}

func (d *memDrafts) FindDraft(_ context.Context, key portsrepo.DraftKey) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	payload, ok := d.drafts[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return payload, nil
}

func (d *memDrafts) DeleteDraft(_ context.Context, key portsrepo.DraftKey) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drafts, key)
	d.deleted++
	return nil
}

func (d *memDrafts) has(key portsrepo.DraftKey) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.drafts[key]
	return ok
}

// memListCache is an in-memory WorkspaceListCache.
type memListCache struct {
	mu    sync.Mutex
	lists map[string]*domain.WorkspaceList
}

func newMemListCache() *memListCache {
	return &memListCache{lists: make(map[string]*domain.WorkspaceList)}
}

func (c *memListCache) GetWorkspaceList(_ context.Context, userID string) (*domain.WorkspaceList, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.lists[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return list, nil
}

func (c *memListCache) SetWorkspaceList(_ context.Context, userID string, list *domain.WorkspaceList) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[userID] = list
	return nil
}

func (c *memListCache) InvalidateWorkspaceList(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, userID)
	return nil
}

// fixtures

const (
	ownerID  = "u-owner"
	adminID  = "u-admin"
	editorID = "u-editor"
	viewerID = "u-viewer"
)

func newWorkspace(id string, focus domain.MainFocus, shared ...domain.Member) *domain.Workspace {
	members := append([]domain.Member{{User: domain.UserRef{ID: ownerID}, Role: domain.RoleOwner}}, shared...)
	return &domain.Workspace{
		WorkspaceID: id,
		Name:        "Workspace " + id,
		Owner:       domain.UserRef{ID: ownerID},
		MainFocus:   focus,
		Members:     members,
	}
}

func member(id string, role domain.Role) domain.Member {
	return domain.Member{User: domain.UserRef{ID: id}, Role: role}
}

func teamWorkspace(id string, focus domain.MainFocus) *domain.Workspace {
	return newWorkspace(id, focus,
		member(adminID, domain.RoleAdmin),
		member(editorID, domain.RoleEditor),
		member(viewerID, domain.RoleViewer))
}
