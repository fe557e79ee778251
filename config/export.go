package config

import (
	"claudewarp/config/models"
	"claudewarp/internal/shell"
)

// DefaultExportPrefix is prepended to every exported variable name
const DefaultExportPrefix = "ANTHROPIC_"

// ExportFormat selects how ExportEnvironment renders a profile
type ExportFormat struct {
	// Shell is bash, zsh, fish, powershell or dotenv
	Shell           string
	IncludeComments bool
	// Prefix defaults to ANTHROPIC_ when empty
	Prefix string
}

// DefaultExportFormat returns bash exports with comments and the ANTHROPIC_ prefix
func DefaultExportFormat() ExportFormat {
	return ExportFormat{
		Shell:           string(shell.Bash),
		IncludeComments: true,
		Prefix:          DefaultExportPrefix,
	}
}

// ExportEnvironment renders the environment of the named profile, or of the
// current profile when name is empty
func (m *Manager) ExportEnvironment(format ExportFormat, name string) (string, error) {
	shellName := format.Shell
	if shellName == "" {
		shellName = string(shell.Bash)
	}
	dialect, err := shell.ParseDialect(shellName)
	if err != nil {
		return "", validationErr("shell", "%s", err.Error())
	}

	var p models.Profile
	if name != "" {
		if p, err = m.Get(name); err != nil {
			return "", err
		}
	} else {
		var ok bool
		if p, ok = m.Current(); !ok {
			return "", validationErr("", "no active profile to export")
		}
	}

	var comments []string
	if format.IncludeComments {
		comments = append(comments, "Claude proxy environment", "Profile: "+p.Name)
		if p.Description != "" {
			comments = append(comments, "Description: "+p.Description)
		}
	}

	return shell.NewGenerator(dialect, comments...).Generate(EnvironmentVars(p, format.Prefix))
}

// EnvironmentVars lists the variables exported for p. The credential
// variable follows the credential kind; model variables appear only when set.
func EnvironmentVars(p models.Profile, prefix string) []shell.Var {
	if prefix == "" {
		prefix = DefaultExportPrefix
	}

	vars := []shell.Var{{Name: prefix + "BASE_URL", Value: p.BaseURL}}
	switch p.Credential.Kind {
	case models.CredentialAPIKey:
		vars = append(vars, shell.Var{Name: prefix + "API_KEY", Value: p.Credential.Value})
	case models.CredentialAuthToken:
		vars = append(vars, shell.Var{Name: prefix + "AUTH_TOKEN", Value: p.Credential.Value})
	}
	if p.BigModel != "" {
		vars = append(vars, shell.Var{Name: prefix + "MODEL", Value: p.BigModel})
	}
	if p.SmallModel != "" {
		vars = append(vars, shell.Var{Name: prefix + "SMALL_FAST_MODEL", Value: p.SmallModel})
	}
	return vars
}
