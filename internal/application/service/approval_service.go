package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// CreateProposalInput carries a new draft proposal with its sign-off chain
type CreateProposalInput struct {
	Category   string
	Title      string
	Content    string
	Amount     float64
	AuthorID   int64
	AuthorName string
	Team       string
	Lines      []LineInput
	References []RefInput
}

// LineInput is one approver slot in the requested chain
type LineInput struct {
	ApproverID   int64
	ApproverName string
	OrderNo      int
}

// RefInput is one observer on the proposal
type RefInput struct {
	UserID   int64
	UserName string
}

// ProposalDetail bundles a proposal with its chain, observers and files
type ProposalDetail struct {
	Proposal    *entity.Proposal       `json:"proposal"`
	Lines       []*entity.ApprovalLine `json:"lines"`
	References  []*entity.Reference    `json:"references"`
	Attachments []*entity.Attachment   `json:"attachments"`
}

// DecisionResult reports the outcome of an approve/reject action
type DecisionResult struct {
	ProposalState string               `json:"proposal_state"`
	Line          *entity.ApprovalLine `json:"line"`
	NextApprover  *entity.ApprovalLine `json:"next_approver,omitempty"`
}

// ApprovalService manages proposals and their sign-off chains
type ApprovalService interface {
	CreateProposal(ctx context.Context, input CreateProposalInput) (*entity.Proposal, error)
	GetProposal(ctx context.Context, id int64) (*ProposalDetail, error)
	ListProposals(ctx context.Context, filter port.ProposalFilter) ([]*entity.Proposal, error)
	GetLines(ctx context.Context, proposalID int64) ([]*entity.ApprovalLine, error)
	Submit(ctx context.Context, proposalID, actorID int64) error
	Approve(ctx context.Context, proposalID, actorID int64, comment string) (*DecisionResult, error)
	Reject(ctx context.Context, proposalID, actorID int64, comment string) (*DecisionResult, error)
	DeleteDraft(ctx context.Context, proposalID, actorID int64) error
	AttachFile(ctx context.Context, proposalID int64, fileName string, content []byte) (*entity.Attachment, error)
}

type approvalServiceImpl struct {
	proposalRepo port.ProposalRepository
	notifier     NotificationService
	fileStorage  port.FileStorage
	txManager    port.TransactionManager
	logger       Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	proposalRepo port.ProposalRepository,
	notifier NotificationService,
	fileStorage port.FileStorage,
	txManager port.TransactionManager,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		proposalRepo: proposalRepo,
		notifier:     notifier,
		fileStorage:  fileStorage,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateProposal creates a draft proposal with its chain pre-seeded pending.
// Duplicate line orders are rejected up front so next-approver resolution
// never has to tie-break.
func (s *approvalServiceImpl) CreateProposal(ctx context.Context, input CreateProposalInput) (*entity.Proposal, error) {
	if input.Title == "" || input.Category == "" {
		return nil, fmt.Errorf("%w: title and category are required", ErrValidation)
	}
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one approval line is required", ErrValidation)
	}

	lines := make([]*entity.ApprovalLine, 0, len(input.Lines))
	for _, li := range input.Lines {
		lines = append(lines, &entity.ApprovalLine{
			ApproverID:   li.ApproverID,
			ApproverName: li.ApproverName,
			OrderNo:      li.OrderNo,
			State:        entity.LinePending,
		})
	}
	if _, err := workflow.NewChain(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	proposal := &entity.Proposal{
		Category:   input.Category,
		Title:      input.Title,
		Content:    input.Content,
		Amount:     input.Amount,
		AuthorID:   input.AuthorID,
		AuthorName: input.AuthorName,
		Team:       input.Team,
		State:      entity.ProposalDraft,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.proposalRepo.Create(txCtx, proposal); err != nil {
			return fmt.Errorf("create proposal: %w", err)
		}

		for _, line := range lines {
			line.ProposalID = proposal.ID
			if err := s.proposalRepo.CreateLine(txCtx, line); err != nil {
				return fmt.Errorf("create line: %w", err)
			}
		}

		for _, ri := range input.References {
			ref := &entity.Reference{
				ProposalID: proposal.ID,
				UserID:     ri.UserID,
				UserName:   ri.UserName,
			}
			if err := s.proposalRepo.CreateReference(txCtx, ref); err != nil {
				return fmt.Errorf("create reference: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Failed to create proposal", "error", err, "author_id", input.AuthorID)
		return nil, err
	}

	s.logger.Info("Proposal created", "id", proposal.ID, "author_id", input.AuthorID)
	return proposal, nil
}

// GetProposal retrieves a proposal with its chain, observers and files
func (s *approvalServiceImpl) GetProposal(ctx context.Context, id int64) (*ProposalDetail, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrNotFound
	}

	lines, err := s.proposalRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}

	refs, err := s.proposalRepo.GetReferences(ctx, id)
	if err != nil {
		return nil, err
	}

	atts, err := s.proposalRepo.GetAttachments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProposalDetail{
		Proposal:    proposal,
		Lines:       lines,
		References:  refs,
		Attachments: atts,
	}, nil
}

// ListProposals retrieves proposals matching the filter
func (s *approvalServiceImpl) ListProposals(ctx context.Context, filter port.ProposalFilter) ([]*entity.Proposal, error) {
	proposals, err := s.proposalRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list proposals", "error", err)
		return nil, err
	}
	return proposals, nil
}

// GetLines retrieves a proposal's chain ordered by rank ascending
func (s *approvalServiceImpl) GetLines(ctx context.Context, proposalID int64) ([]*entity.ApprovalLine, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrNotFound
	}
	return s.proposalRepo.GetLines(ctx, proposalID)
}

// Submit moves a draft into the approval chain and notifies the first
// approver
func (s *approvalServiceImpl) Submit(ctx context.Context, proposalID, actorID int64) error {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal == nil {
		return ErrNotFound
	}
	if proposal.AuthorID != actorID {
		return ErrForbidden
	}

	machine := workflow.NewProposalMachine(workflow.State(proposal.State))
	if err := machine.Fire(ctx, workflow.TriggerSubmit); err != nil {
		return err
	}

	now := time.Now()
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.proposalRepo.UpdateState(txCtx, proposalID, machine.State().String()); err != nil {
			return fmt.Errorf("update state: %w", err)
		}
		return s.proposalRepo.SetSubmittedAt(txCtx, proposalID, now)
	})
	if err != nil {
		s.logger.Error("Failed to submit proposal", "error", err, "id", proposalID)
		return err
	}

	s.logger.Info("Proposal submitted", "id", proposalID, "author_id", actorID)

	lines, err := s.proposalRepo.GetLines(ctx, proposalID)
	if err == nil {
		if chain, cerr := workflow.NewChain(lines); cerr == nil {
			if first := chain.NextPending(); first != nil {
				s.notifyApprover(ctx, proposal, first)
			}
		}
	}

	return nil
}

// Approve records an approval on the actor's pending line
func (s *approvalServiceImpl) Approve(ctx context.Context, proposalID, actorID int64, comment string) (*DecisionResult, error) {
	return s.decide(ctx, proposalID, actorID, entity.LineApproved, comment)
}

// Reject records a rejection on the actor's pending line and terminates
// the proposal
func (s *approvalServiceImpl) Reject(ctx context.Context, proposalID, actorID int64, comment string) (*DecisionResult, error) {
	return s.decide(ctx, proposalID, actorID, entity.LineRejected, comment)
}

// decide is the single decision path for every approver role. The line flip
// uses a conditional update so a concurrent double-decision surfaces as a
// conflict; notifications go out only after the transaction commits.
func (s *approvalServiceImpl) decide(ctx context.Context, proposalID, actorID int64, lineState, comment string) (*DecisionResult, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrNotFound
	}

	state := workflow.State(proposal.State)
	if state.IsTerminal() {
		return nil, workflow.ErrProposalFinalized
	}

	lines, err := s.proposalRepo.GetLines(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	chain, err := workflow.NewChain(lines)
	if err != nil {
		return nil, err
	}

	line, err := chain.CanAct(actorID)
	if err != nil {
		return nil, err
	}

	var trigger workflow.Trigger
	switch {
	case lineState == entity.LineRejected:
		trigger = workflow.TriggerReject
	case chain.IsFinal(line):
		trigger = workflow.TriggerComplete
	default:
		trigger = workflow.TriggerApprove
	}

	machine := workflow.NewProposalMachine(state)
	if err := machine.Fire(ctx, trigger); err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		decided, err := s.proposalRepo.DecideLine(txCtx, line.ID, lineState, comment, now)
		if err != nil {
			return err
		}
		if !decided {
			return fmt.Errorf("%w: line %d decided concurrently", workflow.ErrLineNotPending, line.ID)
		}

		if machine.State() != state {
			if err := s.proposalRepo.UpdateState(txCtx, proposalID, machine.State().String()); err != nil {
				return fmt.Errorf("update state: %w", err)
			}
		}
		if machine.State() == workflow.StateDone {
			if err := s.proposalRepo.SetCompletedAt(txCtx, proposalID, now); err != nil {
				return fmt.Errorf("set completed time: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to decide proposal",
			"error", err, "id", proposalID, "actor_id", actorID, "line_state", lineState)
		return nil, err
	}

	line.State = lineState
	line.Comment = comment
	line.DecidedAt = &now

	result := &DecisionResult{
		ProposalState: machine.State().String(),
		Line:          line,
	}
	if lineState == entity.LineApproved {
		result.NextApprover = chain.NextPending()
	}

	s.logger.Info("Proposal decision recorded",
		"id", proposalID,
		"actor_id", actorID,
		"line_state", lineState,
		"proposal_state", result.ProposalState)

	// Post-commit side effects: exactly one author notification, plus one
	// next-approver notification when a non-final line was approved.
	s.notifyAuthor(ctx, proposal, line, lineState, result.ProposalState)
	if result.NextApprover != nil {
		s.notifyApprover(ctx, proposal, result.NextApprover)
	}

	return result, nil
}

// DeleteDraft removes a proposal that has not yet been submitted
func (s *approvalServiceImpl) DeleteDraft(ctx context.Context, proposalID, actorID int64) error {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal == nil {
		return ErrNotFound
	}
	if proposal.AuthorID != actorID {
		return ErrForbidden
	}
	if proposal.State != entity.ProposalDraft {
		return fmt.Errorf("%w: only drafts may be deleted", ErrForbidden)
	}

	if err := s.proposalRepo.Delete(ctx, proposalID); err != nil {
		s.logger.Error("Failed to delete draft", "error", err, "id", proposalID)
		return err
	}

	s.logger.Info("Draft deleted", "id", proposalID, "author_id", actorID)
	return nil
}

// AttachFile stores an uploaded file and records it on the proposal
func (s *approvalServiceImpl) AttachFile(ctx context.Context, proposalID int64, fileName string, content []byte) (*entity.Attachment, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrNotFound
	}

	relPath := fmt.Sprintf("proposals/%d/%s", proposalID, fileName)
	if err := s.fileStorage.Save(ctx, relPath, content); err != nil {
		s.logger.Error("Failed to store attachment", "error", err, "proposal_id", proposalID)
		return nil, err
	}

	att := &entity.Attachment{
		ProposalID: proposalID,
		FileName:   fileName,
		FilePath:   relPath,
		FileSize:   int64(len(content)),
	}
	if err := s.proposalRepo.CreateAttachment(ctx, att); err != nil {
		return nil, err
	}

	s.logger.Info("Attachment stored", "proposal_id", proposalID, "file", fileName, "size", att.FileSize)
	return att, nil
}

// notifyAuthor tells the original author about a decision. Failures are
// logged and swallowed; the decision already committed.
func (s *approvalServiceImpl) notifyAuthor(ctx context.Context, proposal *entity.Proposal, line *entity.ApprovalLine, lineState, proposalState string) {
	notiType := entity.NotiApproved
	message := fmt.Sprintf("%s approved your proposal %q", line.ApproverName, proposal.Title)
	switch {
	case lineState == entity.LineRejected:
		notiType = entity.NotiRejected
		message = fmt.Sprintf("%s rejected your proposal %q", line.ApproverName, proposal.Title)
	case proposalState == entity.ProposalDone:
		notiType = entity.NotiCompleted
		message = fmt.Sprintf("Your proposal %q passed all approvals", proposal.Title)
	}

	err := s.notifier.Register(ctx, &entity.Notification{
		RecipientID:   proposal.AuthorID,
		RecipientName: proposal.AuthorName,
		ActorID:       line.ApproverID,
		Title:         proposal.Title,
		Message:       message,
		Type:          notiType,
		URL:           fmt.Sprintf("/proposals/%d", proposal.ID),
	})
	if err != nil {
		s.logger.Error("Author notification failed", "error", err, "proposal_id", proposal.ID)
	}
}

// notifyApprover tells the next pending approver the proposal awaits them.
// Failures are logged and swallowed.
func (s *approvalServiceImpl) notifyApprover(ctx context.Context, proposal *entity.Proposal, next *entity.ApprovalLine) {
	err := s.notifier.Register(ctx, &entity.Notification{
		RecipientID:   next.ApproverID,
		RecipientName: next.ApproverName,
		ActorID:       proposal.AuthorID,
		Title:         proposal.Title,
		Message:       fmt.Sprintf("Proposal %q from %s awaits your approval", proposal.Title, proposal.AuthorName),
		Type:          entity.NotiApprovalRequest,
		URL:           fmt.Sprintf("/proposals/%d", proposal.ID),
	})
	if err != nil {
		s.logger.Error("Next approver notification failed",
			"error", err, "proposal_id", proposal.ID, "approver_id", next.ApproverID)
	}
}
