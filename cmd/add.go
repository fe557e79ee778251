package cmd

import (
	"fmt"

	"claudewarp/config/models"
	"claudewarp/config/validation"

	"github.com/spf13/cobra"
)

const defaultBaseURL = "https://api.anthropic.com/"

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("name", "n", "", "Profile name")
	addCmd.Flags().StringP("url", "u", "", "Proxy base URL")
	addCmd.Flags().StringP("key", "k", "", "API key")
	addCmd.Flags().String("auth-token", "", "Auth token (takes precedence over --key)")
	addCmd.Flags().StringP("desc", "d", "", "Description")
	addCmd.Flags().StringP("tags", "t", "", "Comma separated tags")
	addCmd.Flags().String("bigmodel", "", "Model override for the main model")
	addCmd.Flags().String("smallmodel", "", "Model override for the small/fast model")
	addCmd.Flags().BoolP("interactive", "i", false, "Prompt for every field")
	addCmd.Flags().Bool("use", false, "Make the new profile current")
	addCmd.Flags().Bool("disabled", false, "Add the profile disabled")
}

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a proxy profile",
	Long: `Add a new proxy profile.

Missing required fields are prompted for when running in a terminal.

Examples:
  cw add work --url https://proxy.example.com --key sk-xxx
  cw add relay --url https://relay.example.com --auth-token tok-xxx --tags team,relay
  cw add -i`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		if len(args) == 1 {
			if name != "" && name != args[0] {
				return fmt.Errorf("profile name given twice: %q and %q", args[0], name)
			}
			name = args[0]
		}
		baseURL, _ := flags.GetString("url")
		apiKey, _ := flags.GetString("key")
		authToken, _ := flags.GetString("auth-token")
		desc, _ := flags.GetString("desc")
		tags, _ := flags.GetString("tags")
		bigModel, _ := flags.GetString("bigmodel")
		smallModel, _ := flags.GetString("smallmodel")
		interactive, _ := flags.GetBool("interactive")
		use, _ := flags.GetBool("use")
		disabled, _ := flags.GetBool("disabled")

		missing := name == "" || baseURL == "" || (apiKey == "" && authToken == "")
		if interactive || missing {
			if !isInteractive() {
				return fmt.Errorf("missing required fields; pass --name, --url and --key or --auth-token")
			}

			p, err := newPrompter()
			if err != nil {
				return err
			}
			defer p.Close()

			if name, err = askRequired(p, "Name", name); err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = defaultBaseURL
			}
			if baseURL, err = askRequired(p, "Base URL", baseURL); err != nil {
				return err
			}
			if apiKey == "" && authToken == "" {
				useToken, err := p.Confirm("Authenticate with an auth token instead of an API key", false)
				if err != nil {
					return err
				}
				label := "API key"
				if useToken {
					label = "Auth token"
				}
				secret, err := p.AskSecret(label)
				if err != nil {
					return err
				}
				if useToken {
					authToken = secret
				} else {
					apiKey = secret
				}
			}
			if interactive {
				if desc, err = p.Ask("Description", desc); err != nil {
					return err
				}
				if tags, err = p.Ask("Tags (comma separated)", tags); err != nil {
					return err
				}
				if bigModel, err = p.Ask("Big model", bigModel); err != nil {
					return err
				}
				if smallModel, err = p.Ask("Small model", smallModel); err != nil {
					return err
				}
			}
		}

		m, err := newManager()
		if err != nil {
			return err
		}

		profile, err := m.Add(models.Profile{
			Name:        name,
			BaseURL:     baseURL,
			Credential:  models.NewCredential(apiKey, authToken),
			Description: desc,
			Tags:        validation.SplitTags(tags),
			IsActive:    !disabled,
			BigModel:    bigModel,
			SmallModel:  smallModel,
		})
		if err != nil {
			return err
		}

		out := cmd.ErrOrStderr()
		printSuccess(out, "Profile '%s' added", profile.Name)

		// Switch also writes the Claude Code settings
		if use || m.CurrentName() == profile.Name {
			if _, err := m.Switch(profile.Name); err != nil {
				return err
			}
			printSuccess(out, "'%s' is now the current profile", profile.Name)
		}
		return nil
	},
}

func askRequired(p prompter, label, def string) (string, error) {
	for {
		v, err := p.Ask(label, def)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
	}
}
