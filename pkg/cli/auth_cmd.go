package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	cmd.AddCommand(newAuthLoginCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		email string
		token string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store account credentials in the active profile",
		Long:  "Prompt for the account email and personal access token and save both to the active profile. The token prompt does not echo.",
		Example: `  # Interactive login
  connectai auth login

  # Non-interactive (the token still ends up in the profile file)
  connectai auth login --email user@example.com --token tok-123`,
		RunE: func(_ *cobra.Command, _ []string) error {
			reader := bufio.NewReader(os.Stdin)

			if email == "" {
				fmt.Fprint(os.Stderr, "Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if email == "" {
				return fmt.Errorf("email must not be empty")
			}

			if token == "" {
				fmt.Fprint(os.Stderr, "Personal access token: ")
				if term.IsTerminal(int(os.Stdin.Fd())) {
					raw, err := term.ReadPassword(int(os.Stdin.Fd()))
					fmt.Fprintln(os.Stderr)
					if err != nil {
						return fmt.Errorf("read token: %w", err)
					}
					token = strings.TrimSpace(string(raw))
				} else {
					line, err := reader.ReadString('\n')
					if err != nil {
						return fmt.Errorf("read token: %w", err)
					}
					token = strings.TrimSpace(line)
				}
			}
			if token == "" {
				return fmt.Errorf("token must not be empty")
			}

			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{Profiles: make(map[string]Profile)}
			}
			profileName := cfg.CurrentProfile
			if profileName == "" {
				profileName = "default"
				cfg.CurrentProfile = profileName
			}
			if cfg.Profiles == nil {
				cfg.Profiles = make(map[string]Profile)
			}
			p := cfg.Profiles[profileName]
			p.Email = email
			p.Token = token
			cfg.Profiles[profileName] = p

			if err := SaveUserConfig(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Credentials saved to profile %q\n", profileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&token, "token", "", "Personal access token")

	return cmd
}
