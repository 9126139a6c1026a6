package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/carelfelix2/scrapper/internal/api"
	"github.com/carelfelix2/scrapper/internal/watch"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Authenticate and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("password", "", "Password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	store, client := buildClient()
	res, err := client.Login(cmd.Context(), email, password)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("login failed: %s", apiErr.Message)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	store.SetToken(res.AccessToken)
	store.SetUser(&res.User)

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", res.User.Username, res.User.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, _ := buildClient()
	store.Logout()
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	store, client := buildClient()
	user := watch.CheckAuth(cmd.Context(), store, client)
	if user == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Username, user.Email)
	fmt.Fprintf(cmd.OutOrStdout(), "  role: %s  active: %v  verified: %v\n", user.Role, user.IsActive, user.IsVerified)
	return nil
}
