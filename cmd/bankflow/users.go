package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bankflowhq/bankflow/internal/auth"
	"github.com/bankflowhq/bankflow/internal/cli"
	"github.com/bankflowhq/bankflow/internal/model"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage staff accounts",
	}

	cmd.AddCommand(usersAddCmd())
	cmd.AddCommand(usersListCmd())
	cmd.AddCommand(usersDeleteCmd())
	cmd.AddCommand(usersSetPasswordCmd())
	return cmd
}

func usersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Create a staff account",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsersAdd,
	}

	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("role", string(model.RoleOfficer), "role (officer, admin)")
	cmd.Flags().String("password", "", "initial password (prompted if omitted)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runUsersAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")
	if role != string(model.RoleOfficer) && role != string(model.RoleAdmin) {
		return fmt.Errorf("invalid role %q", role)
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	user := &model.User{
		Email:        args[0],
		Name:         name,
		Role:         model.Role(role),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.SaveUser(ctx, user); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Created account "+user.Email))
	return nil
}

func usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			users, err := store.GetAllUsers(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatUserTable(users))
			return nil
		},
	}
}

func usersDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				prompter := cli.NewPrompter(os.Stdin, cmd.OutOrStdout())
				ok, err := prompter.Confirm(cmd.Context(), "Delete account "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted account "+args[0]))
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "skip the confirmation prompt")
	return cmd
}

func usersSetPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-password <email>",
		Short: "Set a new password for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := resolvePassword(cmd)
			if err != nil {
				return err
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetUserPassword(cmd.Context(), args[0], hash); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Password updated for "+args[0]))
			return nil
		},
	}

	cmd.Flags().String("password", "", "new password (prompted if omitted)")
	return cmd
}

func resolvePassword(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), cli.FormatPrompt("Password"))
	reader := cli.NewInputReader(os.Stdin)
	return reader.ReadLine(cmd.Context())
}
