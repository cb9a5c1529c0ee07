package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/internal/domain/workflow"
)

// Mock repositories

type mockProposalRepo struct {
	proposals map[int64]*entity.Proposal
	lines     map[int64][]*entity.ApprovalLine
	nextID    int64

	decideLineFunc func(ctx context.Context, lineID int64, state, comment string, decidedAt time.Time) (bool, error)
}

func newMockProposalRepo() *mockProposalRepo {
	return &mockProposalRepo{
		proposals: make(map[int64]*entity.Proposal),
		lines:     make(map[int64][]*entity.ApprovalLine),
	}
}

func (m *mockProposalRepo) Create(ctx context.Context, p *entity.Proposal) error {
	m.nextID++
	p.ID = m.nextID
	m.proposals[p.ID] = p
	return nil
}

func (m *mockProposalRepo) GetByID(ctx context.Context, id int64) (*entity.Proposal, error) {
	return m.proposals[id], nil
}

func (m *mockProposalRepo) List(ctx context.Context, filter port.ProposalFilter) ([]*entity.Proposal, error) {
	var out []*entity.Proposal
	for _, p := range m.proposals {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProposalRepo) UpdateState(ctx context.Context, id int64, state string) error {
	p, exists := m.proposals[id]
	if !exists {
		return errors.New("proposal not found")
	}
	p.State = state
	return nil
}

func (m *mockProposalRepo) SetSubmittedAt(ctx context.Context, id int64, t time.Time) error {
	if p, exists := m.proposals[id]; exists {
		p.SubmittedAt = &t
	}
	return nil
}

func (m *mockProposalRepo) SetCompletedAt(ctx context.Context, id int64, t time.Time) error {
	if p, exists := m.proposals[id]; exists {
		p.CompletedAt = &t
	}
	return nil
}

func (m *mockProposalRepo) Delete(ctx context.Context, id int64) error {
	delete(m.proposals, id)
	delete(m.lines, id)
	return nil
}

func (m *mockProposalRepo) CreateLine(ctx context.Context, line *entity.ApprovalLine) error {
	line.ID = int64(len(m.lines[line.ProposalID]) + 1)
	m.lines[line.ProposalID] = append(m.lines[line.ProposalID], line)
	return nil
}

func (m *mockProposalRepo) GetLines(ctx context.Context, proposalID int64) ([]*entity.ApprovalLine, error) {
	return m.lines[proposalID], nil
}

func (m *mockProposalRepo) DecideLine(ctx context.Context, lineID int64, state, comment string, decidedAt time.Time) (bool, error) {
	if m.decideLineFunc != nil {
		return m.decideLineFunc(ctx, lineID, state, comment, decidedAt)
	}
	for _, lines := range m.lines {
		for _, line := range lines {
			if line.ID == lineID {
				if line.State != entity.LinePending {
					return false, nil
				}
				line.State = state
				line.Comment = comment
				line.DecidedAt = &decidedAt
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *mockProposalRepo) CreateReference(ctx context.Context, ref *entity.Reference) error {
	return nil
}

func (m *mockProposalRepo) GetReferences(ctx context.Context, proposalID int64) ([]*entity.Reference, error) {
	return nil, nil
}

func (m *mockProposalRepo) CreateAttachment(ctx context.Context, att *entity.Attachment) error {
	att.ID = 1
	return nil
}

func (m *mockProposalRepo) GetAttachments(ctx context.Context, proposalID int64) ([]*entity.Attachment, error) {
	return nil, nil
}

type mockNotifier struct {
	registered []*entity.Notification
	registerErr error
}

func (m *mockNotifier) Register(ctx context.Context, n *entity.Notification) error {
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered = append(m.registered, n)
	return nil
}

func (m *mockNotifier) ListForRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}

func (m *mockNotifier) MarkRead(ctx context.Context, id, recipientID int64) error { return nil }
func (m *mockNotifier) MarkAllRead(ctx context.Context, recipientID int64) error  { return nil }
func (m *mockNotifier) Clear(ctx context.Context, recipientID int64) error        { return nil }

type mockTxManager struct{}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockFileStorage struct {
	saved map[string][]byte
}

func (m *mockFileStorage) Save(ctx context.Context, path string, content []byte) error {
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[path] = content
	return nil
}

func (m *mockFileStorage) Read(ctx context.Context, path string) ([]byte, error) {
	return m.saved[path], nil
}

func (m *mockFileStorage) Exists(ctx context.Context, path string) bool {
	_, ok := m.saved[path]
	return ok
}

func (m *mockFileStorage) Delete(ctx context.Context, path string) error { return nil }

func (m *mockFileStorage) GetFullPath(relativePath string) string { return relativePath }

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// Test fixtures

func newTestService(repo *mockProposalRepo, notifier *mockNotifier) ApprovalService {
	return NewApprovalService(repo, notifier, &mockFileStorage{}, &mockTxManager{}, noopLogger{})
}

func seedPendingProposal(repo *mockProposalRepo) *entity.Proposal {
	p := &entity.Proposal{
		Title:      "Workstation purchase",
		Category:   entity.CategoryPurchase,
		AuthorID:   10,
		AuthorName: "Author",
		State:      entity.ProposalPending,
	}
	_ = repo.Create(context.Background(), p)

	orders := []int{entity.OrderTeamLead, entity.OrderFinance, entity.OrderGM}
	for i, order := range orders {
		_ = repo.CreateLine(context.Background(), &entity.ApprovalLine{
			ProposalID: p.ID,
			ApproverID: int64(100 + i),
			OrderNo:    order,
			State:      entity.LinePending,
		})
	}
	return p
}

// Tests

func TestCreateProposal(t *testing.T) {
	repo := newMockProposalRepo()
	svc := newTestService(repo, &mockNotifier{})

	input := CreateProposalInput{
		Category:   entity.CategoryGeneralExpense,
		Title:      "Team lunch",
		AuthorID:   10,
		AuthorName: "Author",
		Lines: []LineInput{
			{ApproverID: 100, OrderNo: entity.OrderTeamLead},
			{ApproverID: 101, OrderNo: entity.OrderFinance},
		},
	}

	p, err := svc.CreateProposal(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.State != entity.ProposalDraft {
		t.Errorf("expected draft, got %s", p.State)
	}

	lines, _ := repo.GetLines(context.Background(), p.ID)
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
}

func TestCreateProposalDuplicateOrder(t *testing.T) {
	svc := newTestService(newMockProposalRepo(), &mockNotifier{})

	_, err := svc.CreateProposal(context.Background(), CreateProposalInput{
		Category: entity.CategoryProject,
		Title:    "Dup orders",
		AuthorID: 10,
		Lines: []LineInput{
			{ApproverID: 100, OrderNo: entity.OrderTeamLead},
			{ApproverID: 101, OrderNo: entity.OrderTeamLead},
		},
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSubmitNotifiesFirstApprover(t *testing.T) {
	repo := newMockProposalRepo()
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	p := &entity.Proposal{
		Title:    "Course fee",
		Category: entity.CategoryEducation,
		AuthorID: 10,
		State:    entity.ProposalDraft,
	}
	_ = repo.Create(context.Background(), p)
	_ = repo.CreateLine(context.Background(), &entity.ApprovalLine{
		ProposalID: p.ID, ApproverID: 100, OrderNo: entity.OrderTeamLead, State: entity.LinePending,
	})

	if err := svc.Submit(context.Background(), p.ID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.State != entity.ProposalPending {
		t.Errorf("expected pending, got %s", p.State)
	}
	if p.SubmittedAt == nil {
		t.Errorf("expected submitted time to be set")
	}
	if len(notifier.registered) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.registered))
	}
	if notifier.registered[0].RecipientID != 100 {
		t.Errorf("expected first approver notified, got recipient %d", notifier.registered[0].RecipientID)
	}
	if notifier.registered[0].Type != entity.NotiApprovalRequest {
		t.Errorf("expected approval request type, got %s", notifier.registered[0].Type)
	}
}

func TestSubmitOnlyByAuthor(t *testing.T) {
	repo := newMockProposalRepo()
	svc := newTestService(repo, &mockNotifier{})

	p := &entity.Proposal{Title: "x", Category: entity.CategoryPurchase, AuthorID: 10, State: entity.ProposalDraft}
	_ = repo.Create(context.Background(), p)

	if err := svc.Submit(context.Background(), p.ID, 99); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestApproveAdvancesChain(t *testing.T) {
	repo := newMockProposalRepo()
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)
	p := seedPendingProposal(repo)

	result, err := svc.Approve(context.Background(), p.ID, 100, "lgtm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ProposalState != entity.ProposalPending {
		t.Errorf("expected proposal to stay pending, got %s", result.ProposalState)
	}
	if result.Line.State != entity.LineApproved {
		t.Errorf("expected approved line, got %s", result.Line.State)
	}
	if result.NextApprover == nil || result.NextApprover.ApproverID != 101 {
		t.Fatalf("expected next approver 101, got %+v", result.NextApprover)
	}

	// Author decision notification plus next approver notification
	if len(notifier.registered) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.registered))
	}
	if notifier.registered[0].RecipientID != p.AuthorID {
		t.Errorf("expected author notified first, got recipient %d", notifier.registered[0].RecipientID)
	}
	if notifier.registered[1].RecipientID != 101 {
		t.Errorf("expected next approver notified, got recipient %d", notifier.registered[1].RecipientID)
	}
}

func TestApproveOutOfOrder(t *testing.T) {
	repo := newMockProposalRepo()
	svc := newTestService(repo, &mockNotifier{})
	p := seedPendingProposal(repo)

	_, err := svc.Approve(context.Background(), p.ID, 102, "")
	if !errors.Is(err, workflow.ErrOutOfOrder) {
		t.Errorf("expected ErrOutOfOrder, got %v", err)
	}
}

func TestFinalApproveCompletesProposal(t *testing.T) {
	repo := newMockProposalRepo()
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)
	p := seedPendingProposal(repo)

	for _, approverID := range []int64{100, 101} {
		if _, err := svc.Approve(context.Background(), p.ID, approverID, ""); err != nil {
			t.Fatalf("approver %d failed: %v", approverID, err)
		}
	}

	result, err := svc.Approve(context.Background(), p.ID, 102, "final")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ProposalState != entity.ProposalDone {
		t.Errorf("expected done, got %s", result.ProposalState)
	}
	if result.NextApprover != nil {
		t.Errorf("expected no next approver after completion")
	}
	if p.CompletedAt == nil {
		t.Errorf("expected completed time to be set")
	}

	last := notifier.registered[len(notifier.registered)-1]
	if last.RecipientID != p.AuthorID || last.Type != entity.NotiCompleted {
		t.Errorf("expected completion notification to author, got %+v", last)
	}
}

func TestRejectTerminatesProposal(t *testing.T) {
	repo := newMockProposalRepo()
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)
	p := seedPendingProposal(repo)

	result, err := svc.Reject(context.Background(), p.ID, 100, "over budget")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ProposalState != entity.ProposalRejected {
		t.Errorf("expected rejected, got %s", result.ProposalState)
	}
	if result.NextApprover != nil {
		t.Errorf("expected no next approver after rejection")
	}

	// Exactly one notification: the author. No next-approver ping.
	if len(notifier.registered) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.registered))
	}
	if notifier.registered[0].Type != entity.NotiRejected {
		t.Errorf("expected rejection type, got %s", notifier.registered[0].Type)
	}
}

func TestDecideOnFinalizedProposal(t *testing.T) {
	repo := newMockProposalRepo()
	svc := newTestService(repo, &mockNotifier{})
	p := seedPendingProposal(repo)
	p.State = entity.ProposalDone

	_, err := svc.Approve(context.Background(), p.ID, 100, "")
	if !errors.Is(err, workflow.ErrProposalFinalized) {
		t.Errorf("expected ErrProposalFinalized, got %v", err)
	}
}

func TestConcurrentDecisionConflict(t *testing.T) {
	repo := newMockProposalRepo()
	svc := newTestService(repo, &mockNotifier{})
	p := seedPendingProposal(repo)

	// Line flips under us between the read and the conditional update
	repo.decideLineFunc = func(ctx context.Context, lineID int64, state, comment string, decidedAt time.Time) (bool, error) {
		return false, nil
	}

	_, err := svc.Approve(context.Background(), p.ID, 100, "")
	if !errors.Is(err, workflow.ErrLineNotPending) {
		t.Errorf("expected ErrLineNotPending, got %v", err)
	}
}

func TestNotificationFailureDoesNotFailDecision(t *testing.T) {
	repo := newMockProposalRepo()
	notifier := &mockNotifier{registerErr: errors.New("broker down")}
	svc := newTestService(repo, notifier)
	p := seedPendingProposal(repo)

	result, err := svc.Approve(context.Background(), p.ID, 100, "")
	if err != nil {
		t.Fatalf("decision failed on notification error: %v", err)
	}
	if result.Line.State != entity.LineApproved {
		t.Errorf("expected approved line, got %s", result.Line.State)
	}
}

func TestDeleteDraft(t *testing.T) {
	repo := newMockProposalRepo()
	svc := newTestService(repo, &mockNotifier{})

	p := &entity.Proposal{Title: "x", Category: entity.CategoryPurchase, AuthorID: 10, State: entity.ProposalDraft}
	_ = repo.Create(context.Background(), p)

	if err := svc.DeleteDraft(context.Background(), p.ID, 99); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author, got %v", err)
	}

	if err := svc.DeleteDraft(context.Background(), p.ID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := repo.GetByID(context.Background(), p.ID); got != nil {
		t.Errorf("expected proposal removed")
	}

	submitted := seedPendingProposal(repo)
	if err := svc.DeleteDraft(context.Background(), submitted.ID, 10); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for submitted proposal, got %v", err)
	}
}
