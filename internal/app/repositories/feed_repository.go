package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// FeedQuery describes one page of the ranked feed. Nil filters are skipped.
type FeedQuery struct {
	ViewerID      *uuid.UUID
	CommunityName *string
	AuthorID      *uuid.UUID
	SearchTerm    *string
	WindowStart   *time.Time
	WindowEnd     *time.Time
	OrderByScore  bool
	Offset        uint64
	Limit         int
}

// FeedRow is one post as it appears in a feed page
type FeedRow struct {
	Post          models.Post
	AuthorID      uuid.UUID
	AuthorHandle  *string
	AuthorAvatar  *string
	CommunityName string
	CommentCount  int64
	ViewerVote    *models.VoteDirection
}

// FeedRepository runs the ranked feed queries
type FeedRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeedRepository creates a new FeedRepository
func NewFeedRepository(db *pgxpool.Pool) *FeedRepository {
	return &FeedRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// likeEscaper neutralizes the LIKE wildcard characters in user-supplied terms
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps a search term for ILIKE substring matching. Wildcards in
// the term are escaped so a literal "%" or "_" only matches itself.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// applyFilters adds the shared WHERE clauses. Posts whose author account was
// deleted never enter a feed.
func applyFilters(builder squirrel.SelectBuilder, q FeedQuery) squirrel.SelectBuilder {
	builder = builder.Where("p.author_id IS NOT NULL")
	if q.CommunityName != nil {
		builder = builder.Where(squirrel.Eq{"c.name": *q.CommunityName})
	}
	if q.AuthorID != nil {
		builder = builder.Where(squirrel.Eq{"p.author_id": *q.AuthorID})
	}
	if q.SearchTerm != nil {
		builder = builder.Where(squirrel.ILike{"p.title": likePattern(*q.SearchTerm)})
	}
	if q.WindowStart != nil {
		builder = builder.Where(squirrel.GtOrEq{"p.created_at": *q.WindowStart})
	}
	if q.WindowEnd != nil {
		builder = builder.Where(squirrel.Lt{"p.created_at": *q.WindowEnd})
	}
	return builder
}

// Count returns the number of posts matching the feed filters
func (r *FeedRepository) Count(ctx context.Context, q FeedQuery) (int64, error) {
	builder := r.sb.Select("COUNT(*)").
		From("posts p").
		Join("communities c ON c.id = p.community_id")
	builder = applyFilters(builder, q)

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build feed count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting feed posts: %w", err)
	}
	return total, nil
}

// List returns one page of the feed. Top-ranked pages order by score with
// recency as the tiebreaker; otherwise strictly newest first.
func (r *FeedRepository) List(ctx context.Context, q FeedQuery) ([]FeedRow, error) {
	builder := r.sb.Select(
		"p.id", "p.title", "p.body", "p.image_url", "p.community_id",
		"p.vote_score", "p.created_at", "p.updated_at",
		"p.author_id", "u.user_name", "u.image_url",
		"c.name",
		"(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id)",
		"v.direction",
	).
		From("posts p").
		Join("communities c ON c.id = p.community_id").
		Join("users u ON u.id = p.author_id")

	if q.ViewerID != nil {
		builder = builder.LeftJoin("votes v ON v.post_id = p.id AND v.user_id = ?", *q.ViewerID)
	} else {
		builder = builder.LeftJoin("votes v ON FALSE")
	}

	builder = applyFilters(builder, q)

	if q.OrderByScore {
		builder = builder.OrderBy("p.vote_score DESC", "p.created_at DESC", "p.id DESC")
	} else {
		builder = builder.OrderBy("p.created_at DESC", "p.id DESC")
	}
	builder = builder.Offset(q.Offset).Limit(uint64(q.Limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build feed query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying feed: %w", err)
	}
	defer rows.Close()

	var items []FeedRow
	for rows.Next() {
		var row FeedRow
		err := rows.Scan(
			&row.Post.ID, &row.Post.Title, &row.Post.Body, &row.Post.ImageURL,
			&row.Post.CommunityID, &row.Post.VoteScore, &row.Post.CreatedAt,
			&row.Post.UpdatedAt,
			&row.AuthorID, &row.AuthorHandle, &row.AuthorAvatar,
			&row.CommunityName,
			&row.CommentCount,
			&row.ViewerVote,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning feed row")
			continue
		}
		items = append(items, row)
	}
	return items, rows.Err()
}
