package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// ProposalRepository implements port.ProposalRepository
type ProposalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *sql.DB, logger *zap.Logger) port.ProposalRepository {
	return &ProposalRepository{
		db:     db,
		logger: logger,
	}
}

const proposalColumns = `id, category, title, content, amount, author_id, author_name,
	team, state, submitted_at, completed_at, created_at, updated_at`

// Create creates a new proposal
func (r *ProposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	query := `
		INSERT INTO proposals (category, title, content, amount, author_id, author_name, team, state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		proposal.Category,
		proposal.Title,
		proposal.Content,
		proposal.Amount,
		proposal.AuthorID,
		proposal.AuthorName,
		proposal.Team,
		proposal.State,
	)
	if err != nil {
		r.logger.Error("Failed to create proposal", zap.Error(err))
		return fmt.Errorf("failed to create proposal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	proposal.ID = id
	return nil
}

// GetByID retrieves a proposal by ID
func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = ?`

	var p entity.Proposal
	var submittedAt, completedAt sql.NullTime

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Category,
		&p.Title,
		&p.Content,
		&p.Amount,
		&p.AuthorID,
		&p.AuthorName,
		&p.Team,
		&p.State,
		&submittedAt,
		&completedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get proposal", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	if submittedAt.Valid {
		p.SubmittedAt = &submittedAt.Time
	}
	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}

	return &p, nil
}

// List retrieves proposals matching the filter, newest first
func (r *ProposalRepository) List(ctx context.Context, filter port.ProposalFilter) ([]*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE 1=1`
	args := []interface{}{}

	if filter.State != "" {
		query += ` AND state = ?`
		args = append(args, filter.State)
	}
	if filter.AuthorID != 0 {
		query += ` AND author_id = ?`
		args = append(args, filter.AuthorID)
	}
	if filter.Team != "" {
		query += ` AND team = ?`
		args = append(args, filter.Team)
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list proposals", zap.Error(err))
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	var proposals []*entity.Proposal
	for rows.Next() {
		var p entity.Proposal
		var submittedAt, completedAt sql.NullTime

		err := rows.Scan(
			&p.ID,
			&p.Category,
			&p.Title,
			&p.Content,
			&p.Amount,
			&p.AuthorID,
			&p.AuthorName,
			&p.Team,
			&p.State,
			&submittedAt,
			&completedAt,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}

		if submittedAt.Valid {
			p.SubmittedAt = &submittedAt.Time
		}
		if completedAt.Valid {
			p.CompletedAt = &completedAt.Time
		}

		proposals = append(proposals, &p)
	}

	return proposals, rows.Err()
}

// UpdateState updates the proposal state
func (r *ProposalRepository) UpdateState(ctx context.Context, id int64, state string) error {
	query := `UPDATE proposals SET state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, state, id)
	if err != nil {
		r.logger.Error("Failed to update proposal state", zap.Int64("id", id), zap.String("state", state), zap.Error(err))
		return fmt.Errorf("failed to update proposal state: %w", err)
	}

	return nil
}

// SetSubmittedAt records the submission time
func (r *ProposalRepository) SetSubmittedAt(ctx context.Context, id int64, t time.Time) error {
	query := `UPDATE proposals SET submitted_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, t, id)
	if err != nil {
		r.logger.Error("Failed to set submitted time", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set submitted time: %w", err)
	}

	return nil
}

// SetCompletedAt records the final approval time
func (r *ProposalRepository) SetCompletedAt(ctx context.Context, id int64, t time.Time) error {
	query := `UPDATE proposals SET completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, t, id)
	if err != nil {
		r.logger.Error("Failed to set completed time", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set completed time: %w", err)
	}

	return nil
}

// Delete removes a proposal. Lines, references and attachments cascade.
func (r *ProposalRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM proposals WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete proposal", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete proposal: %w", err)
	}

	return nil
}

// CreateLine creates a new approval line
func (r *ProposalRepository) CreateLine(ctx context.Context, line *entity.ApprovalLine) error {
	query := `
		INSERT INTO approval_lines (proposal_id, approver_id, approver_name, order_no, state)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		line.ProposalID,
		line.ApproverID,
		line.ApproverName,
		line.OrderNo,
		line.State,
	)
	if err != nil {
		r.logger.Error("Failed to create approval line",
			zap.Int64("proposal_id", line.ProposalID),
			zap.Error(err))
		return fmt.Errorf("failed to create approval line: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	line.ID = id
	return nil
}

// GetLines retrieves a proposal's approval lines ordered by rank ascending
func (r *ProposalRepository) GetLines(ctx context.Context, proposalID int64) ([]*entity.ApprovalLine, error) {
	query := `
		SELECT id, proposal_id, approver_id, approver_name, order_no, state, comment, decided_at, created_at
		FROM approval_lines
		WHERE proposal_id = ?
		ORDER BY order_no ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, proposalID)
	if err != nil {
		r.logger.Error("Failed to get approval lines", zap.Int64("proposal_id", proposalID), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.ApprovalLine
	for rows.Next() {
		var line entity.ApprovalLine
		var comment sql.NullString
		var decidedAt sql.NullTime

		err := rows.Scan(
			&line.ID,
			&line.ProposalID,
			&line.ApproverID,
			&line.ApproverName,
			&line.OrderNo,
			&line.State,
			&comment,
			&decidedAt,
			&line.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval line: %w", err)
		}

		if comment.Valid {
			line.Comment = comment.String
		}
		if decidedAt.Valid {
			line.DecidedAt = &decidedAt.Time
		}

		lines = append(lines, &line)
	}

	return lines, rows.Err()
}

// DecideLine conditionally flips a pending line to the given state. The
// state = 'PENDING' guard makes a concurrent double-decision affect zero
// rows, which the caller maps to a conflict.
func (r *ProposalRepository) DecideLine(ctx context.Context, lineID int64, state, comment string, decidedAt time.Time) (bool, error) {
	query := `
		UPDATE approval_lines
		SET state = ?, comment = ?, decided_at = ?
		WHERE id = ? AND state = 'PENDING'
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, state, comment, decidedAt, lineID)
	if err != nil {
		r.logger.Error("Failed to decide approval line",
			zap.Int64("line_id", lineID),
			zap.String("state", state),
			zap.Error(err))
		return false, fmt.Errorf("failed to decide approval line: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected == 1, nil
}

// CreateReference attaches an observer to a proposal
func (r *ProposalRepository) CreateReference(ctx context.Context, ref *entity.Reference) error {
	query := `INSERT INTO proposal_refs (proposal_id, user_id, user_name) VALUES (?, ?, ?)`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, ref.ProposalID, ref.UserID, ref.UserName)
	if err != nil {
		r.logger.Error("Failed to create reference", zap.Int64("proposal_id", ref.ProposalID), zap.Error(err))
		return fmt.Errorf("failed to create reference: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	ref.ID = id
	return nil
}

// GetReferences retrieves a proposal's observers
func (r *ProposalRepository) GetReferences(ctx context.Context, proposalID int64) ([]*entity.Reference, error) {
	query := `
		SELECT id, proposal_id, user_id, user_name, created_at
		FROM proposal_refs
		WHERE proposal_id = ?
		ORDER BY id ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, proposalID)
	if err != nil {
		r.logger.Error("Failed to get references", zap.Int64("proposal_id", proposalID), zap.Error(err))
		return nil, fmt.Errorf("failed to get references: %w", err)
	}
	defer rows.Close()

	var refs []*entity.Reference
	for rows.Next() {
		var ref entity.Reference
		if err := rows.Scan(&ref.ID, &ref.ProposalID, &ref.UserID, &ref.UserName, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		refs = append(refs, &ref)
	}

	return refs, rows.Err()
}

// CreateAttachment records an uploaded file
func (r *ProposalRepository) CreateAttachment(ctx context.Context, att *entity.Attachment) error {
	query := `
		INSERT INTO proposal_files (proposal_id, file_name, file_path, file_size)
		VALUES (?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		att.ProposalID,
		att.FileName,
		att.FilePath,
		att.FileSize,
	)
	if err != nil {
		r.logger.Error("Failed to create attachment", zap.Int64("proposal_id", att.ProposalID), zap.Error(err))
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	att.ID = id
	return nil
}

// GetAttachments retrieves a proposal's uploaded files
func (r *ProposalRepository) GetAttachments(ctx context.Context, proposalID int64) ([]*entity.Attachment, error) {
	query := `
		SELECT id, proposal_id, file_name, file_path, file_size, created_at
		FROM proposal_files
		WHERE proposal_id = ?
		ORDER BY id ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, proposalID)
	if err != nil {
		r.logger.Error("Failed to get attachments", zap.Int64("proposal_id", proposalID), zap.Error(err))
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}
	defer rows.Close()

	var atts []*entity.Attachment
	for rows.Next() {
		var att entity.Attachment
		if err := rows.Scan(&att.ID, &att.ProposalID, &att.FileName, &att.FilePath, &att.FileSize, &att.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		atts = append(atts, &att)
	}

	return atts, rows.Err()
}

// Verify interface compliance
var _ port.ProposalRepository = (*ProposalRepository)(nil)
