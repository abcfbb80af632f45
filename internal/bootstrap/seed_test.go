package bootstrap_test

import (
	"context"
	"errors"
	"testing"

	"anoa.com/apiplayground/internal/bootstrap"
	profileDto "anoa.com/apiplayground/internal/modules/profile/dto"
	profile "anoa.com/apiplayground/internal/modules/profile/service"
	"anoa.com/apiplayground/internal/profiletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedProfilesOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	svc := profile.NewProfileService(profiletest.NewRepository(), nil)

	require.NoError(t, bootstrap.SeedProfiles(ctx, svc))
	count, err := svc.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(bootstrap.SampleProfiles())), count)

	require.NoError(t, bootstrap.SeedProfiles(ctx, svc))
	count, err = svc.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	profiles, err := svc.ListProfiles(ctx, "")
	require.NoError(t, err)
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"John Doe", "Jane Smith", "Mike Johnson"}, names)
}

func TestSeedSkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc := profile.NewProfileService(profiletest.NewRepository(), nil)

	_, err := svc.CreateProfile(ctx, profileDto.ProfileRequest{Name: "Existing", Email: "existing@example.com"})
	require.NoError(t, err)

	require.NoError(t, bootstrap.SeedProfiles(ctx, svc))
	count, err := svc.CountProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSeedReportsStorageErrors(t *testing.T) {
	repo := profiletest.NewRepository()
	repo.Err = errors.New("connection refused")
	svc := profile.NewProfileService(repo, nil)

	err := bootstrap.SeedProfiles(context.Background(), svc)
	assert.ErrorIs(t, err, repo.Err)
}
