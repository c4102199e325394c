package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jerodj-cdata/connectai-go/pkg/connectai"
)

var (
	version = "dev"
	commit  = "none"
)

// settings holds the fully resolved connection values after the
// flag > env > profile > default precedence has been applied.
type settings struct {
	baseURL string
	email   string
	token   string
	output  string
	timeout time.Duration
}

// client constructs a library client from the resolved settings.
func (s *settings) client() (*connectai.Client, error) {
	return connectai.NewClient(connectai.Config{
		BaseURL: s.baseURL,
		Email:   s.email,
		Token:   s.token,
		Timeout: s.timeout,
	})
}

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]interface{}{
				"error": err.Error(),
			}
			var reqErr *connectai.RequestError
			if errors.As(err, &reqErr) {
				errObj["http_status"] = reqErr.Status
			}
			_ = PrintJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	var profile string

	rootCmd := &cobra.Command{
		Use:           "connectai",
		Short:         "CData Connect AI CLI",
		Long:          "Command-line interface for CData Connect AI metadata discovery and SQL query execution.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}
			p := cfg.ActiveProfile(profile)

			fs := cmd.Root().PersistentFlags()
			s.baseURL = resolveString(fs, "base-url", "CONNECT_AI_BASE_URL", p.BaseURL, s.baseURL)
			s.email = resolveString(fs, "email", connectai.EnvEmail, p.Email, s.email)
			s.token = resolveString(fs, "token", connectai.EnvToken, p.Token, s.token)
			s.output = resolveString(fs, "output", "CONNECT_AI_OUTPUT", p.Output, s.output)

			if err := validateOutputFormat(s.output); err != nil {
				return err
			}
			return validateBaseURL(s.baseURL)
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.baseURL, "base-url", connectai.DefaultBaseURL, "Connect AI API endpoint")
	rootCmd.PersistentFlags().StringVar(&s.email, "email", "", "Account email (or CONNECT_AI_EMAIL)")
	rootCmd.PersistentFlags().StringVar(&s.token, "token", "", "Personal access token (or CONNECT_AI_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&s.output, "output", "o", "table", "Output format (table, json, csv)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")
	rootCmd.PersistentFlags().DurationVar(&s.timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(newCatalogsCmd(s))
	rootCmd.AddCommand(newSchemasCmd(s))
	rootCmd.AddCommand(newTablesCmd(s))
	rootCmd.AddCommand(newColumnsCmd(s))
	rootCmd.AddCommand(newQueryCmd(s))

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// resolveString applies the flag > env > profile > default precedence for
// one persistent flag.
func resolveString(fs *pflag.FlagSet, name, env, profileValue, current string) string {
	if fs.Changed(name) {
		return current
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	if profileValue != "" {
		return profileValue
	}
	return current
}

func validateBaseURL(baseURL string) error {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return fmt.Errorf("invalid base URL %q: must not be empty", baseURL)
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", baseURL)
	}
	return nil
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
