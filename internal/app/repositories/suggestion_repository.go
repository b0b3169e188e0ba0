package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/pkg/logger"
)

const activeInCommunitiesExpr = `(
	EXISTS (
		SELECT 1 FROM posts p
		JOIN communities c ON c.id = p.community_id
		WHERE p.author_id = u.id AND c.name = ANY(?)
	)
	OR EXISTS (
		SELECT 1 FROM comments cm
		JOIN posts p ON p.id = cm.post_id
		JOIN communities c ON c.id = p.community_id
		WHERE cm.author_id = u.id AND c.name = ANY(?)
	)
)`

// CandidateFilter carries the requester's affinity signals. Nil signals are
// not matched on.
type CandidateFilter struct {
	RequesterID     uuid.UUID
	StudentMajor    *string
	PrimaryRole     *models.RoleType
	StudentBatch    *string
	CampusLocations []string
	TopCommunities  []string
	Limit           int
}

// Candidate is a user matched by at least one affinity signal.
// SharedCommunity reports whether they are active in the requester's top
// communities, which cannot be recomputed from the profile columns alone.
type Candidate struct {
	User            models.User
	SharedCommunity bool
}

// SuggestionRepository runs the friend suggestion queries
type SuggestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSuggestionRepository creates a new SuggestionRepository
func NewSuggestionRepository(db *pgxpool.Pool) *SuggestionRepository {
	return &SuggestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// TopCommunitiesByActivity returns the names of the communities where the
// user has posted or commented the most, busiest first. The default community
// is excluded so it does not dominate every user's signal.
func (r *SuggestionRepository) TopCommunitiesByActivity(ctx context.Context, userID uuid.UUID, excludeName string, limit int) ([]string, error) {
	query := `
		SELECT c.name
		FROM (
			SELECT p.community_id FROM posts p WHERE p.author_id = $1
			UNION ALL
			SELECT p.community_id
			FROM comments cm
			JOIN posts p ON p.id = cm.post_id
			WHERE cm.author_id = $1
		) activity
		JOIN communities c ON c.id = activity.community_id
		WHERE c.name <> $2
		GROUP BY c.name
		ORDER BY COUNT(*) DESC, c.name ASC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, userID, excludeName, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying community activity: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("error scanning community name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindCandidates returns users matching at least one of the requester's
// affinity signals, most recently active profiles first. Only completed
// profiles with a handle are eligible.
func (r *SuggestionRepository) FindCandidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error) {
	signals := squirrel.Or{}
	if filter.StudentMajor != nil {
		signals = append(signals, squirrel.Eq{"u.student_major": *filter.StudentMajor})
	}
	if filter.PrimaryRole != nil {
		signals = append(signals, squirrel.Eq{"u.primary_role": *filter.PrimaryRole})
	}
	if filter.StudentBatch != nil {
		signals = append(signals, squirrel.Eq{"u.student_batch": *filter.StudentBatch})
	}
	if len(filter.CampusLocations) > 0 {
		signals = append(signals, squirrel.Expr("u.campus_locations && ?", filter.CampusLocations))
	}
	if len(filter.TopCommunities) > 0 {
		signals = append(signals, squirrel.Expr(activeInCommunitiesExpr, filter.TopCommunities, filter.TopCommunities))
	}
	if len(signals) == 0 {
		return nil, nil
	}

	sharedExpr := "FALSE"
	args := []interface{}{}
	if len(filter.TopCommunities) > 0 {
		sharedExpr = activeInCommunitiesExpr
		args = append(args, filter.TopCommunities, filter.TopCommunities)
	}

	builder := r.sb.Select(
		"u.id", "u.user_name", "u.full_name", "u.primary_role",
		"u.student_major", "u.student_batch", "u.campus_locations",
		"u.bio", "u.occupation_tags", "u.image_url", "u.updated_at",
	).
		Column(squirrel.Expr(sharedExpr+" AS shared_community", args...)).
		From("users u").
		Where(squirrel.NotEq{"u.id": filter.RequesterID}).
		Where(squirrel.Eq{"u.profile_complete": true}).
		Where("u.user_name IS NOT NULL").
		Where(signals).
		OrderBy("u.updated_at DESC").
		Limit(uint64(filter.Limit))

	sql, queryArgs, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build candidate query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("error querying candidates: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		err := rows.Scan(
			&c.User.ID, &c.User.UserName, &c.User.FullName, &c.User.PrimaryRole,
			&c.User.StudentMajor, &c.User.StudentBatch, &c.User.CampusLocations,
			&c.User.Bio, &c.User.OccupationTags, &c.User.ImageURL, &c.User.UpdatedAt,
			&c.SharedCommunity,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning candidate row")
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
