package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
	"konnect/internal/services"
)

var (
	adminEmail    string
	adminPassword string
	actingAdmin   string
	userSearch    string
	userPage      int
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		user, err := services.NewAuthService(repo, 0).SeedAdmin(cmd.Context(), adminEmail, adminPassword)
		if err != nil {
			return err
		}
		fmt.Printf("Admin %s created with ID %d\n", user.Email, user.ID)
		return nil
	},
}

var banCmd = &cobra.Command{
	Use:   "ban <userID>",
	Short: "Ban a user and end their sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModeration(cmd.Context(), args[0], true)
	},
}

var unbanCmd = &cobra.Command{
	Use:   "unban <userID>",
	Short: "Lift a ban",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModeration(cmd.Context(), args[0], false)
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		page, err := services.NewAdminService(repo).GetAllUsers(cmd.Context(), userSearch, userPage)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tROLE\tNAME\tBANNED")
		for i := range page.Items {
			u := &page.Items[i]
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Email, u.Role, u.DisplayName(), u.Banned)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("page %d of %d (%d users)\n", page.Page, page.TotalPages, page.Total)
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password")
	seedAdminCmd.MarkFlagRequired("email")
	seedAdminCmd.MarkFlagRequired("password")

	for _, cmd := range []*cobra.Command{banCmd, unbanCmd} {
		cmd.Flags().StringVar(&actingAdmin, "admin", "", "Email of the admin recorded in the audit log")
		cmd.MarkFlagRequired("admin")
	}

	usersCmd.Flags().StringVar(&userSearch, "search", "", "Email substring")
	usersCmd.Flags().IntVar(&userPage, "page", 1, "Page number")

	rootCmd.AddCommand(seedAdminCmd, banCmd, unbanCmd, usersCmd)
}

func runModeration(ctx context.Context, rawID string, ban bool) error {
	userID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || userID == 0 {
		return fmt.Errorf("invalid user id %q", rawID)
	}

	repo, err := openRepository()
	if err != nil {
		return err
	}
	admin, err := resolveAdmin(ctx, repo, actingAdmin)
	if err != nil {
		return err
	}

	adminService := services.NewAdminService(repo)
	if ban {
		err = adminService.BanUser(ctx, admin.ID, uint(userID))
	} else {
		err = adminService.UnbanUser(ctx, admin.ID, uint(userID))
	}
	if err != nil {
		return err
	}

	fmt.Printf("User %d banned=%t\n", userID, ban)
	return nil
}

func resolveAdmin(ctx context.Context, repo *repository.Repository, email string) (*models.User, error) {
	admin, err := repo.GetUserByEmail(ctx, services.NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("no account with email %s", email)
	}
	if err != nil {
		return nil, err
	}
	if admin.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%s is not an admin", email)
	}
	return admin, nil
}
