package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"konnect/internal/database/dbtest"
	"konnect/internal/repository"
	"konnect/internal/services"
)

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"migrate", "apply-sql", "seed-admin", "ban", "unban", "users"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestApplySQLNeedsFile(t *testing.T) {
	rootCmd.SetArgs([]string{"apply-sql"})
	defer rootCmd.SetArgs(nil)
	assert.Error(t, rootCmd.Execute())
}

func TestResolveAdmin(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRepository(dbtest.Open(t))
	authService := services.NewAuthService(repo, 0)

	_, err := authService.SeedAdmin(ctx, "root@example.com", "s3cret-pass")
	require.NoError(t, err)
	_, err = authService.Register(ctx, services.RegisterInput{
		Email:           "c@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		Role:            "creator",
		DisplayName:     "Cre",
	})
	require.NoError(t, err)

	admin, err := resolveAdmin(ctx, repo, " ROOT@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "root@example.com", admin.Email)

	_, err = resolveAdmin(ctx, repo, "c@example.com")
	assert.ErrorContains(t, err, "not an admin")

	_, err = resolveAdmin(ctx, repo, "ghost@example.com")
	assert.ErrorContains(t, err, "no account")
}
