package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/pkg/apperrors"
	"github.com/bfriends/backend/internal/pkg/dberrors"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new comment. A vanished post maps to ErrPostNotFound.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (text, post_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, comment.Text, comment.PostID, comment.AuthorID).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrPostNotFound
		}
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment for ownership checks
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT id, text, post_id, author_id, created_at
		FROM comments
		WHERE id = $1
	`
	var comment models.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.Text, &comment.PostID, &comment.AuthorID, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	return &comment, nil
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

// commentsByPostBuilder builds the post-detail comment listing, newest first
func commentsByPostBuilder(sb squirrel.StatementBuilderType, postID int64) squirrel.SelectBuilder {
	return sb.Select("cm.id", "cm.text", "cm.post_id", "cm.author_id", "cm.created_at", "u.user_name").
		From("comments cm").
		LeftJoin("users u ON u.id = cm.author_id").
		Where(squirrel.Eq{"cm.post_id": postID}).
		OrderBy("cm.created_at DESC", "cm.id DESC")
}

// ListByPost returns all comments on a post, newest first, with author handles
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	sql, args, err := commentsByPostBuilder(r.sb, postID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment listing query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.Text, &comment.PostID, &comment.AuthorID,
			&comment.CreatedAt, &comment.AuthorHandle,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning comment row")
			continue
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// ListByUser returns a page of a user's comments, newest first, with the
// title of the commented post. Returns the total count for pagination.
func (r *CommentRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset uint64, limit int) ([]models.Comment, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE author_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting user comments: %w", err)
	}

	query := `
		SELECT cm.id, cm.text, cm.post_id, cm.author_id, cm.created_at, p.title
		FROM comments cm
		JOIN posts p ON p.id = cm.post_id
		WHERE cm.author_id = $1
		ORDER BY cm.created_at DESC, cm.id DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing user comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.Text, &comment.PostID, &comment.AuthorID,
			&comment.CreatedAt, &comment.PostTitle,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning comment row")
			continue
		}
		comments = append(comments, comment)
	}
	return comments, total, rows.Err()
}
