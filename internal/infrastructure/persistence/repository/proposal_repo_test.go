package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

func TestProposalRoundTrip(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "jkim", "J Kim")
	lead := seedUser(t, db, "blee", "B Lee")
	repo := NewProposalRepository(db, zap.NewNop())
	ctx := context.Background()

	proposal := &entity.Proposal{
		Category:   entity.CategoryPurchase,
		Title:      "New monitors",
		Content:    "Two 27-inch monitors for the dev team",
		Amount:     800000,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Team:       "dev",
		State:      entity.ProposalDraft,
	}
	require.NoError(t, repo.Create(ctx, proposal))
	require.NotZero(t, proposal.ID)

	require.NoError(t, repo.CreateLine(ctx, &entity.ApprovalLine{
		ProposalID:   proposal.ID,
		ApproverID:   lead.ID,
		ApproverName: lead.Name,
		OrderNo:      entity.OrderTeamLead,
		State:        entity.LinePending,
	}))

	got, err := repo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "New monitors", got.Title)
	assert.Equal(t, entity.ProposalDraft, got.State)
	assert.Nil(t, got.SubmittedAt)

	lines, err := repo.GetLines(ctx, proposal.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, lead.ID, lines[0].ApproverID)
	assert.Equal(t, entity.LinePending, lines[0].State)
}

func TestProposalGetMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewProposalRepository(db, zap.NewNop())

	got, err := repo.GetByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecideLineFlipsPendingOnce(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "jkim", "J Kim")
	lead := seedUser(t, db, "blee", "B Lee")
	repo := NewProposalRepository(db, zap.NewNop())
	ctx := context.Background()

	proposal := &entity.Proposal{
		Category:   entity.CategoryPurchase,
		Title:      "Standing desk",
		AuthorID:   author.ID,
		AuthorName: author.Name,
		State:      entity.ProposalPending,
	}
	require.NoError(t, repo.Create(ctx, proposal))

	line := &entity.ApprovalLine{
		ProposalID:   proposal.ID,
		ApproverID:   lead.ID,
		ApproverName: lead.Name,
		OrderNo:      entity.OrderTeamLead,
		State:        entity.LinePending,
	}
	require.NoError(t, repo.CreateLine(ctx, line))

	now := time.Now().UTC()

	decided, err := repo.DecideLine(ctx, line.ID, entity.LineApproved, "ok", now)
	require.NoError(t, err)
	assert.True(t, decided)

	// A second decision on the same line affects zero rows
	decided, err = repo.DecideLine(ctx, line.ID, entity.LineRejected, "too late", now)
	require.NoError(t, err)
	assert.False(t, decided)

	lines, err := repo.GetLines(ctx, proposal.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, entity.LineApproved, lines[0].State)
	assert.Equal(t, "ok", lines[0].Comment)
	require.NotNil(t, lines[0].DecidedAt)
}

func TestDuplicateLineOrderRejectedBySchema(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "jkim", "J Kim")
	lead := seedUser(t, db, "blee", "B Lee")
	repo := NewProposalRepository(db, zap.NewNop())
	ctx := context.Background()

	proposal := &entity.Proposal{
		Category:   entity.CategoryGeneralExpense,
		Title:      "Team dinner",
		AuthorID:   author.ID,
		AuthorName: author.Name,
		State:      entity.ProposalDraft,
	}
	require.NoError(t, repo.Create(ctx, proposal))

	line := entity.ApprovalLine{
		ProposalID:   proposal.ID,
		ApproverID:   lead.ID,
		ApproverName: lead.Name,
		OrderNo:      entity.OrderTeamLead,
		State:        entity.LinePending,
	}
	first := line
	require.NoError(t, repo.CreateLine(ctx, &first))

	second := line
	assert.Error(t, repo.CreateLine(ctx, &second))
}

func TestDeleteProposalCascades(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "jkim", "J Kim")
	lead := seedUser(t, db, "blee", "B Lee")
	repo := NewProposalRepository(db, zap.NewNop())
	ctx := context.Background()

	proposal := &entity.Proposal{
		Category:   entity.CategoryEducation,
		Title:      "Conference ticket",
		AuthorID:   author.ID,
		AuthorName: author.Name,
		State:      entity.ProposalDraft,
	}
	require.NoError(t, repo.Create(ctx, proposal))
	require.NoError(t, repo.CreateLine(ctx, &entity.ApprovalLine{
		ProposalID:   proposal.ID,
		ApproverID:   lead.ID,
		ApproverName: lead.Name,
		OrderNo:      entity.OrderTeamLead,
		State:        entity.LinePending,
	}))
	require.NoError(t, repo.CreateReference(ctx, &entity.Reference{
		ProposalID: proposal.ID,
		UserID:     lead.ID,
		UserName:   lead.Name,
	}))

	require.NoError(t, repo.Delete(ctx, proposal.ID))

	got, err := repo.GetByID(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	lines, err := repo.GetLines(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	refs, err := repo.GetReferences(ctx, proposal.ID)
	require.NoError(t, err)
	assert.Empty(t, refs)
}
