package workflow

import (
	"fmt"
	"sort"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

// Chain is a proposal's ordered sign-off chain. Lines are kept sorted by
// order rank ascending; ranks are unique within a chain.
type Chain struct {
	lines []*entity.ApprovalLine
}

// NewChain builds a chain from a proposal's lines. Returns ErrDuplicateOrder
// when two lines share an order rank.
func NewChain(lines []*entity.ApprovalLine) (*Chain, error) {
	sorted := append([]*entity.ApprovalLine{}, lines...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OrderNo < sorted[j].OrderNo
	})

	seen := make(map[int]bool, len(sorted))
	for _, line := range sorted {
		if seen[line.OrderNo] {
			return nil, fmt.Errorf("%w: order %d", ErrDuplicateOrder, line.OrderNo)
		}
		seen[line.OrderNo] = true
	}

	return &Chain{lines: sorted}, nil
}

// Lines returns the lines in ascending order rank
func (c *Chain) Lines() []*entity.ApprovalLine {
	return c.lines
}

// NextPending returns the first pending line scanning order ranks ascending,
// or nil when every line is decided.
func (c *Chain) NextPending() *entity.ApprovalLine {
	for _, line := range c.lines {
		if line.State == entity.LinePending {
			return line
		}
	}
	return nil
}

// LineFor returns the approver's line, or nil when the actor holds none
func (c *Chain) LineFor(approverID int64) *entity.ApprovalLine {
	for _, line := range c.lines {
		if line.ApproverID == approverID {
			return line
		}
	}
	return nil
}

// CanAct validates that the approver may decide now: their line exists, is
// pending, and every lower-order line is already approved.
func (c *Chain) CanAct(approverID int64) (*entity.ApprovalLine, error) {
	line := c.LineFor(approverID)
	if line == nil {
		return nil, ErrNotApprover
	}
	if line.State != entity.LinePending {
		return nil, fmt.Errorf("%w: line %d is %s", ErrLineNotPending, line.ID, line.State)
	}
	for _, earlier := range c.lines {
		if earlier.OrderNo >= line.OrderNo {
			break
		}
		if earlier.State != entity.LineApproved {
			return nil, fmt.Errorf("%w: order %d is %s", ErrOutOfOrder, earlier.OrderNo, earlier.State)
		}
	}
	return line, nil
}

// IsFinal reports whether the line holds the highest order rank in the chain
func (c *Chain) IsFinal(line *entity.ApprovalLine) bool {
	if len(c.lines) == 0 {
		return false
	}
	return c.lines[len(c.lines)-1].OrderNo == line.OrderNo
}

// Rejected reports whether any line in the chain is rejected
func (c *Chain) Rejected() bool {
	for _, line := range c.lines {
		if line.State == entity.LineRejected {
			return true
		}
	}
	return false
}
