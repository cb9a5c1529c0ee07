package workflow

import (
	"errors"
	"testing"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

func chainLines(states ...string) []*entity.ApprovalLine {
	orders := []int{entity.OrderTeamLead, entity.OrderFinance, entity.OrderGM}
	lines := make([]*entity.ApprovalLine, len(states))
	for i, state := range states {
		lines[i] = &entity.ApprovalLine{
			ID:         int64(i + 1),
			ApproverID: int64(100 + i),
			OrderNo:    orders[i],
			State:      state,
		}
	}
	return lines
}

func TestNewChainRejectsDuplicateOrders(t *testing.T) {
	lines := []*entity.ApprovalLine{
		{ApproverID: 1, OrderNo: 2, State: entity.LinePending},
		{ApproverID: 2, OrderNo: 2, State: entity.LinePending},
	}

	_, err := NewChain(lines)
	if !errors.Is(err, ErrDuplicateOrder) {
		t.Errorf("expected ErrDuplicateOrder, got %v", err)
	}
}

func TestNewChainSortsByOrder(t *testing.T) {
	lines := []*entity.ApprovalLine{
		{ApproverID: 3, OrderNo: entity.OrderGM, State: entity.LinePending},
		{ApproverID: 1, OrderNo: entity.OrderTeamLead, State: entity.LinePending},
		{ApproverID: 2, OrderNo: entity.OrderFinance, State: entity.LinePending},
	}

	chain, err := NewChain(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := chain.Lines()
	for i, want := range []int{entity.OrderTeamLead, entity.OrderFinance, entity.OrderGM} {
		if got[i].OrderNo != want {
			t.Errorf("position %d: expected order %d, got %d", i, want, got[i].OrderNo)
		}
	}
}

func TestNextPending(t *testing.T) {
	tests := []struct {
		name   string
		states []string
		wantID int64 // 0 means nil
	}{
		{
			name:   "fresh chain starts at lowest order",
			states: []string{entity.LinePending, entity.LinePending, entity.LinePending},
			wantID: 1,
		},
		{
			name:   "first approved moves to second",
			states: []string{entity.LineApproved, entity.LinePending, entity.LinePending},
			wantID: 2,
		},
		{
			name:   "all decided yields nil",
			states: []string{entity.LineApproved, entity.LineApproved, entity.LineApproved},
			wantID: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := NewChain(chainLines(tt.states...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			next := chain.NextPending()
			if tt.wantID == 0 {
				if next != nil {
					t.Errorf("expected no pending line, got line %d", next.ID)
				}
				return
			}
			if next == nil {
				t.Fatalf("expected line %d, got nil", tt.wantID)
			}
			if next.ID != tt.wantID {
				t.Errorf("expected line %d, got %d", tt.wantID, next.ID)
			}
		})
	}
}

func TestCanAct(t *testing.T) {
	tests := []struct {
		name       string
		states     []string
		approverID int64
		wantErr    error
	}{
		{
			name:       "first approver acts on fresh chain",
			states:     []string{entity.LinePending, entity.LinePending, entity.LinePending},
			approverID: 100,
		},
		{
			name:       "later approver blocked while earlier pending",
			states:     []string{entity.LinePending, entity.LinePending, entity.LinePending},
			approverID: 101,
			wantErr:    ErrOutOfOrder,
		},
		{
			name:       "second approver acts after first approves",
			states:     []string{entity.LineApproved, entity.LinePending, entity.LinePending},
			approverID: 101,
		},
		{
			name:       "approver cannot decide twice",
			states:     []string{entity.LineApproved, entity.LinePending, entity.LinePending},
			approverID: 100,
			wantErr:    ErrLineNotPending,
		},
		{
			name:       "outsider holds no line",
			states:     []string{entity.LinePending, entity.LinePending, entity.LinePending},
			approverID: 999,
			wantErr:    ErrNotApprover,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := NewChain(chainLines(tt.states...))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			line, err := chain.CanAct(tt.approverID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if line.ApproverID != tt.approverID {
				t.Errorf("expected line for approver %d, got %d", tt.approverID, line.ApproverID)
			}
		})
	}
}

// Full chain walk: team lead and finance approve, GM rejects.
func TestChainSequentialDecisions(t *testing.T) {
	lines := chainLines(entity.LinePending, entity.LinePending, entity.LinePending)
	chain, err := NewChain(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	line, err := chain.CanAct(100)
	if err != nil {
		t.Fatalf("team lead blocked: %v", err)
	}
	line.State = entity.LineApproved

	line, err = chain.CanAct(101)
	if err != nil {
		t.Fatalf("finance blocked: %v", err)
	}
	line.State = entity.LineApproved

	line, err = chain.CanAct(102)
	if err != nil {
		t.Fatalf("GM blocked: %v", err)
	}
	if !chain.IsFinal(line) {
		t.Errorf("expected GM line to be final")
	}
	line.State = entity.LineRejected

	if !chain.Rejected() {
		t.Errorf("expected chain to report rejection")
	}
	if chain.NextPending() != nil {
		t.Errorf("expected no pending line after all decisions")
	}
}
