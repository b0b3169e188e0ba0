package seed

import (
	"context"

	"github.com/bfriends/backend/internal/app/models"
	"github.com/bfriends/backend/internal/app/repositories"
	"github.com/bfriends/backend/internal/pkg/logger"
)

// Seed inserts the baseline data the platform expects: the default community
// every post can fall back to. Safe to run on every startup.
func Seed(ctx context.Context, communityRepo *repositories.CommunityRepository) error {
	description := "The default community for everyone."
	if err := communityRepo.EnsureExists(ctx, models.DefaultCommunityName, &description); err != nil {
		return err
	}
	logger.Debug().Str("community", models.DefaultCommunityName).Msg("Default community ensured")
	return nil
}
