package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/application/service"
	"github.com/garamsoft/groupware/internal/auth"
	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/internal/domain/workflow"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}

type stubAuthService struct {
	loginFunc   func(ctx context.Context, loginID, password string) (*service.TokenPair, error)
	getUserFunc func(ctx context.Context, id int64) (*entity.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input service.RegisterUserInput) (*entity.User, error) {
	return &entity.User{ID: 99, LoginID: input.LoginID, Name: input.Name, Role: entity.RoleUser}, nil
}

func (s *stubAuthService) Login(ctx context.Context, loginID, password string) (*service.TokenPair, error) {
	if s.loginFunc != nil {
		return s.loginFunc(ctx, loginID, password)
	}
	return nil, service.ErrInvalidCredentials
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	return nil, service.ErrInvalidCredentials
}

func (s *stubAuthService) Logout(ctx context.Context, userID int64) error { return nil }

func (s *stubAuthService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	if s.getUserFunc != nil {
		return s.getUserFunc(ctx, id)
	}
	return &entity.User{ID: id, LoginID: "jkim", Name: "J Kim"}, nil
}

func (s *stubAuthService) ListUsers(ctx context.Context, team string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

type stubApprovalService struct {
	approveFunc func(ctx context.Context, proposalID, actorID int64, comment string) (*service.DecisionResult, error)
}

func (s *stubApprovalService) CreateProposal(ctx context.Context, input service.CreateProposalInput) (*entity.Proposal, error) {
	return &entity.Proposal{ID: 1, Title: input.Title, State: entity.ProposalDraft}, nil
}

func (s *stubApprovalService) GetProposal(ctx context.Context, id int64) (*service.ProposalDetail, error) {
	return nil, service.ErrNotFound
}

func (s *stubApprovalService) ListProposals(ctx context.Context, filter port.ProposalFilter) ([]*entity.Proposal, error) {
	return nil, nil
}

func (s *stubApprovalService) GetLines(ctx context.Context, proposalID int64) ([]*entity.ApprovalLine, error) {
	return nil, nil
}

func (s *stubApprovalService) Submit(ctx context.Context, proposalID, actorID int64) error {
	return nil
}

func (s *stubApprovalService) Approve(ctx context.Context, proposalID, actorID int64, comment string) (*service.DecisionResult, error) {
	if s.approveFunc != nil {
		return s.approveFunc(ctx, proposalID, actorID, comment)
	}
	return &service.DecisionResult{ProposalState: entity.ProposalPending}, nil
}

func (s *stubApprovalService) Reject(ctx context.Context, proposalID, actorID int64, comment string) (*service.DecisionResult, error) {
	return &service.DecisionResult{ProposalState: entity.ProposalRejected}, nil
}

func (s *stubApprovalService) DeleteDraft(ctx context.Context, proposalID, actorID int64) error {
	return nil
}

func (s *stubApprovalService) AttachFile(ctx context.Context, proposalID int64, fileName string, content []byte) (*entity.Attachment, error) {
	return nil, nil
}

func newTestServer(services Services) (*Server, *auth.TokenManager) {
	tokens := auth.NewTokenManager(auth.Config{
		AccessSecret:  "test-access",
		RefreshSecret: "test-refresh",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	return NewServer(DefaultServerConfig(), services, tokens, nopLogger{}), tokens
}

func bearerFor(t *testing.T, tokens *auth.TokenManager, role string) string {
	t.Helper()
	token, err := tokens.IssueAccess(&entity.User{ID: 7, LoginID: "jkim", Name: "J Kim", Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(s *Server, method, path, bearer string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	s, _ := newTestServer(Services{})

	w := doRequest(s, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestMissingTokenRejected(t *testing.T) {
	s, _ := newTestServer(Services{Auth: &stubAuthService{}})

	w := doRequest(s, http.MethodGet, "/api/v1/users/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGarbageTokenRejected(t *testing.T) {
	s, _ := newTestServer(Services{Auth: &stubAuthService{}})

	w := doRequest(s, http.MethodGet, "/api/v1/users/me", "Bearer not-a-token", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginReturnsTokenPair(t *testing.T) {
	authSvc := &stubAuthService{
		loginFunc: func(ctx context.Context, loginID, password string) (*service.TokenPair, error) {
			return &service.TokenPair{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         &entity.User{ID: 7, LoginID: loginID},
			}, nil
		},
	}
	s, _ := newTestServer(Services{Auth: authSvc})

	body, _ := json.Marshal(LoginRequest{LoginID: "jkim", Password: "secret123"})
	w := doRequest(s, http.MethodPost, "/api/v1/auth/login", "", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    service.TokenPair `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "access", resp.Data.AccessToken)
	assert.Equal(t, "refresh", resp.Data.RefreshToken)
}

func TestLoginBadCredentials(t *testing.T) {
	s, _ := newTestServer(Services{Auth: &stubAuthService{}})

	body, _ := json.Marshal(LoginRequest{LoginID: "jkim", Password: "wrong"})
	w := doRequest(s, http.MethodPost, "/api/v1/auth/login", "", body)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMissingFields(t *testing.T) {
	s, _ := newTestServer(Services{Auth: &stubAuthService{}})

	w := doRequest(s, http.MethodPost, "/api/v1/auth/login", "", []byte(`{"login_id":"jkim"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentUser(t *testing.T) {
	s, tokens := newTestServer(Services{Auth: &stubAuthService{}})

	w := doRequest(s, http.MethodGet, "/api/v1/users/me", bearerFor(t, tokens, entity.RoleUser), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool        `json:"success"`
		Data    entity.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Data.ID)
}

func TestUserRegistrationRequiresAdmin(t *testing.T) {
	s, tokens := newTestServer(Services{Auth: &stubAuthService{}})

	body, _ := json.Marshal(RegisterUserRequest{LoginID: "new", Password: "pw123456", Name: "New User"})

	w := doRequest(s, http.MethodPost, "/api/v1/users", bearerFor(t, tokens, entity.RoleUser), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(s, http.MethodPost, "/api/v1/users", bearerFor(t, tokens, entity.RoleAdmin), body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestApproveConflictMapsTo409(t *testing.T) {
	approval := &stubApprovalService{
		approveFunc: func(ctx context.Context, proposalID, actorID int64, comment string) (*service.DecisionResult, error) {
			return nil, workflow.ErrProposalFinalized
		},
	}
	s, tokens := newTestServer(Services{Auth: &stubAuthService{}, Approval: approval})

	w := doRequest(s, http.MethodPost, "/api/v1/proposals/1/approve", bearerFor(t, tokens, entity.RoleManager), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestInvalidPathID(t *testing.T) {
	s, tokens := newTestServer(Services{Auth: &stubAuthService{}, Approval: &stubApprovalService{}})

	w := doRequest(s, http.MethodGet, "/api/v1/proposals/abc", bearerFor(t, tokens, entity.RoleUser), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(Services{})

	w := doRequest(s, http.MethodOptions, "/api/v1/auth/login", "", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
