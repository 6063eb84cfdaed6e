package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/SscSPs/workspace_dashboard/internal/apperrors"
	"github.com/SscSPs/workspace_dashboard/internal/core/domain"
	"github.com/SscSPs/workspace_dashboard/internal/core/permissions"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/dto"
	"github.com/SscSPs/workspace_dashboard/internal/handlers"
	"github.com/SscSPs/workspace_dashboard/internal/platform/config"
)

const (
	testSecret  = "test-secret"
	testUserID  = "user-1"
	workspaceID = "ws-1"
)

type HandlersTestSuite struct {
	suite.Suite
	router    *gin.Engine
	workspace *MockWorkspaceService
	table     *MockTableService
	content   *MockContentService
	reporting *MockReportingService
	auth      *MockAuthService
	cookie    *http.Cookie
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.workspace = new(MockWorkspaceService)
	s.table = new(MockTableService)
	s.content = new(MockContentService)
	s.reporting = new(MockReportingService)
	s.auth = new(MockAuthService)

	cfg := &config.Config{
		IsProduction:          true,
		AccessTokenCookieName: "access_token",
		AccessTokenSecret:     testSecret,
		AuthEntryURL:          "https://app.example.com/login",
	}
	services := &portssvc.ServiceContainer{
		Workspace: s.workspace,
		Table:     s.table,
		Content:   s.content,
		Reporting: s.reporting,
		Auth:      s.auth,
	}
	rate := limiter.Rate{Period: time.Minute, Limit: 1}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, services, handlers.RouteDeps{
		AskLimiter: limiter.New(memory.NewStore(), rate),
	})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": testUserID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	s.Require().NoError(err)
	s.cookie = &http.Cookie{Name: "access_token", Value: token}
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(s.cookie)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *HandlersTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlersTestSuite) TestSession_RequiresCookie() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("https://app.example.com/login", s.decodeError(w).Redirect)
	s.workspace.AssertNotCalled(s.T(), "Session", mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestSession_Ready() {
	ws := &domain.Workspace{
		WorkspaceID: workspaceID,
		Name:        "Hiring",
		MainFocus:   domain.FocusHumanResources,
		Owner:       domain.UserRef{ID: testUserID},
		Members:     []domain.Member{{User: domain.UserRef{ID: testUserID}, Role: domain.RoleOwner}},
	}
	snap := &portssvc.SessionSnapshot{
		Status:            portssvc.SessionReady,
		SelectedWorkspace: ws,
		Role:              domain.RoleOwner,
		Permissions:       permissions.CapabilitiesFor(domain.RoleOwner),
		RoutePrefix:       domain.RoutePrefixHR,
		Owned:             []domain.Workspace{*ws},
	}
	s.workspace.On("Session", mock.Anything, testUserID).Return(snap, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/session", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.SessionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(portssvc.SessionReady, resp.Status)
	s.Require().NotNil(resp.SelectedWorkspace)
	s.Equal(testUserID, resp.SelectedWorkspace.OwnerID)
	s.Equal("hr", resp.RoutePrefix)
	s.True(resp.Permissions.CanDeleteWorkspace)
	s.workspace.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) TestListWorkspaces_LoadFailedIsNotAnError() {
	snap := &portssvc.SessionSnapshot{Status: portssvc.SessionLoadFailed, LoadError: "backend unreachable"}
	s.workspace.On("ListWorkspaces", mock.Anything, testUserID).Return(snap, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/workspaces", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.SessionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(portssvc.SessionLoadFailed, resp.Status)
	s.Equal("backend unreachable", resp.LoadError)
}

func (s *HandlersTestSuite) TestCreateWorkspace_InvalidBody() {
	w := s.do(http.MethodPost, "/api/v1/workspaces", map[string]string{"name": "ab"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.workspace.AssertNotCalled(s.T(), "CreateWorkspace", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestCreateWorkspace_Created() {
	params := domain.CreateWorkspaceParams{Name: "Roadmap", MainFocus: domain.FocusProjectManagement}
	created := &domain.Workspace{WorkspaceID: "ws-9", Name: "Roadmap", MainFocus: domain.FocusProjectManagement, Owner: domain.UserRef{ID: testUserID}}
	s.workspace.On("CreateWorkspace", mock.Anything, testUserID, params).Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/workspaces", dto.CreateWorkspaceRequest{Name: "Roadmap", MainFocus: domain.FocusProjectManagement})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.WorkspaceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("ws-9", resp.WorkspaceID)
	s.Equal("pm", resp.RoutePrefix)
}

func (s *HandlersTestSuite) TestCreateWorkspace_LimitReached() {
	s.workspace.On("CreateWorkspace", mock.Anything, testUserID, mock.Anything).
		Return(nil, apperrors.NewLimitError("workspace limit of 3 reached")).Once()

	w := s.do(http.MethodPost, "/api/v1/workspaces", dto.CreateWorkspaceRequest{Name: "Roadmap", MainFocus: domain.FocusProjectManagement})

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("workspace limit of 3 reached", s.decodeError(w).Error)
}

func (s *HandlersTestSuite) TestOpenWorkspace_TransportFailureOffersRecovery() {
	s.workspace.On("OpenWorkspace", mock.Anything, testUserID, workspaceID).
		Return(nil, apperrors.ErrTransport).Once()

	w := s.do(http.MethodGet, "/api/v1/workspaces/"+workspaceID, nil)

	s.Equal(http.StatusBadGateway, w.Code)
	resp := s.decodeError(w)
	s.Require().NotNil(resp.Recovery)
	s.Equal("Go to Dashboard", resp.Recovery.Label)
	s.Equal("/dashboard", resp.Recovery.Href)
}

func (s *HandlersTestSuite) TestOpenWorkspace_NotFound() {
	s.workspace.On("OpenWorkspace", mock.Anything, testUserID, workspaceID).
		Return(nil, &apperrors.RemoteError{StatusCode: http.StatusNotFound, Message: "no such workspace"}).Once()

	w := s.do(http.MethodGet, "/api/v1/workspaces/"+workspaceID, nil)

	s.Equal(http.StatusNotFound, w.Code)
	s.NotNil(s.decodeError(w).Recovery)
}

func (s *HandlersTestSuite) TestOpenWorkspace_Stale() {
	s.workspace.On("OpenWorkspace", mock.Anything, testUserID, workspaceID).
		Return(nil, apperrors.ErrStaleResponse).Once()

	w := s.do(http.MethodGet, "/api/v1/workspaces/"+workspaceID, nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestUpdateWorkspace_ForbiddenCarriesNotice() {
	name := "Renamed"
	s.workspace.On("UpdateWorkspace", mock.Anything, testUserID, workspaceID, domain.UpdateWorkspaceParams{Name: &name}).
		Return(nil, apperrors.NewForbiddenError("you cannot edit this workspace")).Once()

	w := s.do(http.MethodPut, "/api/v1/workspaces/"+workspaceID, map[string]string{"name": name})

	s.Equal(http.StatusForbidden, w.Code)
	resp := s.decodeError(w)
	s.Equal("you cannot edit this workspace", resp.Notice)
	s.Nil(resp.Recovery)
}

func (s *HandlersTestSuite) TestDeleteWorkspace_Confirmation() {
	confirmErr := apperrors.NewAppError(http.StatusPreconditionRequired, "deleting a workspace needs confirmation", apperrors.ErrConfirmationRequired)
	s.workspace.On("DeleteWorkspace", mock.Anything, testUserID, workspaceID, false).Return(confirmErr).Once()
	s.workspace.On("DeleteWorkspace", mock.Anything, testUserID, workspaceID, true).Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/workspaces/"+workspaceID, nil)
	s.Equal(http.StatusPreconditionRequired, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/workspaces/"+workspaceID+"?confirm=true", nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.workspace.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) TestRemoveMember_DotSegmentRejected() {
	w := s.do(http.MethodDelete, "/api/v1/workspaces/"+workspaceID+"/members/..?confirm=true", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.workspace.AssertNotCalled(s.T(), "RemoveMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.workspace.AssertNotCalled(s.T(), "DeleteWorkspace", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestResolveRoute() {
	route := &portssvc.RouteResolution{WorkspaceID: workspaceID, MainFocus: domain.FocusProductManagement, Routable: true, Prefix: "pm", Path: "/dashboard/pm/" + workspaceID}
	s.workspace.On("ResolveRoute", mock.Anything, testUserID, workspaceID).Return(route, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/workspaces/"+workspaceID+"/route", nil)

	s.Equal(http.StatusOK, w.Code)
	var resp portssvc.RouteResolution
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("/dashboard/pm/"+workspaceID, resp.Path)
}

func (s *HandlersTestSuite) TestInviteMember_RoleValidated() {
	w := s.do(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/members", map[string]string{"email": "a@example.com", "role": "owner"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.workspace.AssertNotCalled(s.T(), "InviteMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestInviteMember_CeilingReached() {
	params := domain.InviteParams{Email: "a@example.com", Role: domain.RoleEditor}
	s.workspace.On("InviteMember", mock.Anything, testUserID, workspaceID, params).
		Return(nil, apperrors.NewLimitError("workspace is shared with the maximum of 5 members")).Once()

	w := s.do(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/members", dto.InviteMemberRequest{Email: params.Email, Role: params.Role})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestAddRow_Staged() {
	row := domain.Row{Data: map[string]any{"name": "Ada"}}
	staged := &domain.Row{RowID: "r-1", Data: row.Data}
	s.table.On("AddRow", mock.Anything, testUserID, workspaceID, row).Return(staged, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/rows", dto.AddRowRequest{Data: row.Data})

	s.Equal(http.StatusAccepted, w.Code)
	var resp domain.Row
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("r-1", resp.RowID)
}

func (s *HandlersTestSuite) TestSync_InProgress() {
	s.table.On("Flush", mock.Anything, testUserID, workspaceID).Return(nil, apperrors.ErrFlushInProgress).Once()

	w := s.do(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/rows/sync", nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestSync_Success() {
	res := &portssvc.FlushResult{Sent: domain.ChangeSet{Deleted: []string{"r-2"}}}
	s.table.On("Flush", mock.Anything, testUserID, workspaceID).Return(res, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/rows/sync", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "r-2")
}

func (s *HandlersTestSuite) TestMoveCard_RevertedBoardReturned() {
	reverted := &domain.Board{
		WorkspaceID: workspaceID,
		Columns: []domain.BoardColumn{
			{Name: domain.StatusTodo, Cards: []domain.Card{{RowID: "t-1", Column: domain.StatusTodo, State: domain.CardReverted}}},
		},
	}
	s.table.On("MoveCard", mock.Anything, testUserID, workspaceID, "t-1", domain.StatusDone).
		Return(reverted, apperrors.ErrTransport).Once()

	w := s.do(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/board/move", dto.MoveCardRequest{RowID: "t-1", ToColumn: domain.StatusDone})

	s.Equal(http.StatusBadGateway, w.Code)
	var resp struct {
		Error string       `json:"error"`
		Board domain.Board `json:"board"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Board.Columns, 1)
	s.Equal(domain.CardReverted, resp.Board.Columns[0].Cards[0].State)
}

func (s *HandlersTestSuite) TestDownloadAttachment_Streams() {
	content := &domain.AttachmentContent{
		FileName:    "cv.pdf",
		ContentType: "application/pdf",
		Size:        5,
		Body:        io.NopCloser(strings.NewReader("%PDF-")),
	}
	s.content.On("DownloadAttachment", mock.Anything, testUserID, workspaceID, "att-1").Return(content, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/workspaces/"+workspaceID+"/attachments/att-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "cv.pdf")
	s.Equal("%PDF-", w.Body.String())
}

func (s *HandlersTestSuite) TestAsk_RateLimited() {
	answer := &domain.AskAnswer{Answer: "Three candidates are in review."}
	s.content.On("Ask", mock.Anything, testUserID, workspaceID, domain.AskParams{Question: "Status?"}).Return(answer, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/ai/ask", dto.AskRequest{Question: "Status?"})
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/workspaces/"+workspaceID+"/ai/ask", dto.AskRequest{Question: "Status?"})
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.content.AssertNumberOfCalls(s.T(), "Ask", 1)
}

func (s *HandlersTestSuite) TestBreakdown_RequiresColumn() {
	w := s.do(http.MethodGet, "/api/v1/workspaces/"+workspaceID+"/reports/breakdown", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.reporting.AssertNotCalled(s.T(), "RowBreakdown", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestLogin_RelaysCookie() {
	creds := domain.LoginCredentials{Email: "ada@example.com", Password: "secret"}
	res := &domain.AuthResult{
		User:    &domain.User{UserID: testUserID, Email: creds.Email},
		Cookies: []*http.Cookie{{Name: "access_token", Value: "fresh", HttpOnly: true}},
	}
	s.auth.On("Login", mock.Anything, creds).Return(res, nil).Once()

	raw, _ := json.Marshal(dto.LoginRequest{Email: creds.Email, Password: creds.Password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Set-Cookie"), "access_token=fresh")
	var resp dto.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(testUserID, resp.UserID)
}

func (s *HandlersTestSuite) TestLogout_RelaysCookieEvenOnError() {
	res := &domain.AuthResult{Cookies: []*http.Cookie{{Name: "access_token", Value: "", MaxAge: -1}}}
	s.auth.On("Logout", mock.Anything, testUserID).Return(res, apperrors.ErrTransport).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/logout", nil)

	s.Equal(http.StatusBadGateway, w.Code)
	s.Contains(w.Header().Get("Set-Cookie"), "access_token=")
}

func (s *HandlersTestSuite) TestDeleteAccount_PassesConfirmation() {
	s.auth.On("DeleteAccount", mock.Anything, testUserID, true).Return(&domain.AuthResult{}, nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/users/me?confirm=true", nil)

	s.Equal(http.StatusNoContent, w.Code)
	s.auth.AssertExpectations(s.T())
}
