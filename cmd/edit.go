package cmd

import (
	"fmt"
	"strings"

	"claudewarp/config"
	"claudewarp/config/models"
	"claudewarp/config/validation"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(editCmd)

	// Define flags for non-interactive editing
	editCmd.Flags().String("name", "", "Rename the profile")
	editCmd.Flags().StringP("url", "u", "", "Change base URL")
	editCmd.Flags().StringP("key", "k", "", "Change API key (replaces any auth token)")
	editCmd.Flags().String("auth-token", "", "Change auth token (replaces any API key)")
	editCmd.Flags().StringP("desc", "d", "", "Change description")
	editCmd.Flags().StringP("tags", "t", "", "Replace tags (comma separated)")
	editCmd.Flags().String("bigmodel", "", "Change main model override (empty clears)")
	editCmd.Flags().String("smallmodel", "", "Change small/fast model override (empty clears)")
	editCmd.Flags().Bool("enable", false, "Enable the profile")
	editCmd.Flags().Bool("disable", false, "Disable the profile")
	editCmd.MarkFlagsMutuallyExclusive("enable", "disable")
}

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a proxy profile",
	Long: `Edit a saved proxy profile.

With flags, only the given fields change. Without flags, each field is
prompted for with its current value as the default.

Examples:
  cw edit work --url https://proxy2.example.com
  cw edit work --name work-eu --tags eu,team
  cw edit work --bigmodel ""
  cw edit work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		m, err := newManager()
		if err != nil {
			return err
		}
		existing, err := m.Get(name)
		if err != nil {
			return err
		}

		newName, update := editFromFlags(cmd)
		if newName == "" && update.IsEmpty() {
			if !isInteractive() {
				return fmt.Errorf("no changes specified")
			}
			if newName, update, err = editInteractive(existing); err != nil {
				return err
			}
		}

		var p models.Profile
		if newName != "" && newName != name {
			p, err = m.Rename(name, newName, update)
		} else {
			p, err = m.Update(name, update)
		}
		if err != nil {
			return err
		}

		printSuccess(cmd.ErrOrStderr(), "Profile '%s' updated", p.Name)
		return nil
	},
}

// editFromFlags collects the fields whose flags were given
func editFromFlags(cmd *cobra.Command) (string, config.ProfileUpdate) {
	flags := cmd.Flags()
	var u config.ProfileUpdate

	str := func(flag string) *string {
		if !flags.Changed(flag) {
			return nil
		}
		v, _ := flags.GetString(flag)
		return &v
	}

	newName, _ := flags.GetString("name")
	u.BaseURL = str("url")
	u.APIKey = str("key")
	u.AuthToken = str("auth-token")
	u.Description = str("desc")
	u.BigModel = str("bigmodel")
	u.SmallModel = str("smallmodel")
	if tags := str("tags"); tags != nil {
		parsed := validation.SplitTags(*tags)
		u.Tags = &parsed
	}

	switch {
	case flags.Changed("enable"):
		active := true
		u.IsActive = &active
	case flags.Changed("disable"):
		active := false
		u.IsActive = &active
	}
	return strings.TrimSpace(newName), u
}

// editInteractive prompts for every field, keeping unchanged ones out of the update
func editInteractive(p models.Profile) (string, config.ProfileUpdate, error) {
	var u config.ProfileUpdate

	pr, err := newPrompter()
	if err != nil {
		return "", u, err
	}
	defer pr.Close()

	fmt.Fprint(rootCmd.ErrOrStderr(), formatProfile(p, false))

	ask := func(label, current string) (*string, error) {
		v, err := pr.Ask(label, current)
		if err != nil || v == current {
			return nil, err
		}
		return &v, nil
	}

	newName, err := pr.Ask("Name", p.Name)
	if err != nil {
		return "", u, err
	}
	if u.BaseURL, err = ask("Base URL", p.BaseURL); err != nil {
		return "", u, err
	}

	secret, err := pr.AskSecret(fmt.Sprintf("New %s (empty keeps current)", strings.ToLower(credentialLabel(p))))
	if err != nil {
		return "", u, err
	}
	if secret != "" {
		if p.Credential.Kind == models.CredentialAuthToken {
			u.AuthToken = &secret
		} else {
			u.APIKey = &secret
		}
	}

	if u.Description, err = ask("Description", p.Description); err != nil {
		return "", u, err
	}
	tags, err := ask("Tags (comma separated)", strings.Join(p.Tags, ","))
	if err != nil {
		return "", u, err
	}
	if tags != nil {
		parsed := validation.SplitTags(*tags)
		u.Tags = &parsed
	}
	if u.BigModel, err = ask("Big model", p.BigModel); err != nil {
		return "", u, err
	}
	if u.SmallModel, err = ask("Small model", p.SmallModel); err != nil {
		return "", u, err
	}
	active, err := pr.Confirm("Enabled", p.IsActive)
	if err != nil {
		return "", u, err
	}
	if active != p.IsActive {
		u.IsActive = &active
	}

	if newName == p.Name && u.IsEmpty() {
		return "", u, fmt.Errorf("no changes made")
	}
	return newName, u, nil
}

func credentialLabel(p models.Profile) string {
	if p.Credential.Kind == models.CredentialAuthToken {
		return "Auth token"
	}
	return "API key"
}
