package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"claudewarp/config"
	"claudewarp/config/models"
	"claudewarp/internal/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Styles
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

func printError(w io.Writer, err error) {
	prefix := "Error"
	switch {
	case config.IsValidation(err):
		prefix = "Invalid input"
	case config.IsNotFound(err):
		prefix = "Not found"
	case config.IsDuplicate(err):
		prefix = "Already exists"
	}
	fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("✗ %s: %v", prefix, err)))
}

// credentialSummary describes the credential without revealing it
func credentialSummary(p models.Profile) string {
	switch p.Credential.Kind {
	case models.CredentialAPIKey:
		return "API key " + utils.MaskSecret(p.Credential.Value)
	case models.CredentialAuthToken:
		return "Auth token " + utils.MaskSecret(p.Credential.Value)
	default:
		return "none"
	}
}

// maskedRecord is the display form of p with the credential masked
func maskedRecord(p models.Profile) models.Record {
	r := models.ToRecord(p)
	if r.APIKey != "" {
		r.APIKey = utils.MaskSecret(r.APIKey)
	}
	if r.AuthToken != "" {
		r.AuthToken = utils.MaskSecret(r.AuthToken)
	}
	return r
}

func statusLabel(p models.Profile) string {
	if p.IsActive {
		return "enabled"
	}
	return "disabled"
}

// formatProfile renders the details of one profile
func formatProfile(p models.Profile, current bool) string {
	var b strings.Builder

	title := p.Name
	if current {
		title += " (current)"
	}
	b.WriteString(titleStyle.Render(title) + "\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(label+":"), value))
	}
	row("URL", p.BaseURL)
	row("Credential", credentialSummary(p))
	row("Description", p.Description)
	row("Tags", strings.Join(p.Tags, ", "))
	row("Status", statusLabel(p))
	row("Big model", p.BigModel)
	row("Small model", p.SmallModel)
	row("Created", p.CreatedAt)
	row("Updated", p.UpdatedAt)
	return b.String()
}

// renderProfileTable renders profiles as a bordered table
func renderProfileTable(profiles []models.Profile, current string) string {
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		marker := ""
		if p.Name == current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			p.Name,
			p.BaseURL,
			credentialSummary(p),
			statusLabel(p),
			utils.Truncate(strings.Join(p.Tags, ","), 24),
			utils.Truncate(p.Description, 32),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("", "NAME", "URL", "CREDENTIAL", "STATUS", "TAGS", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// renderStats renders manager statistics
func renderStats(s config.Stats, path string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Profile statistics") + "\n")
	b.WriteString(fmt.Sprintf("  %s %d\n", labelStyle.Render("Total:"), s.Total))
	b.WriteString(fmt.Sprintf("  %s %d\n", labelStyle.Render("Enabled:"), s.Active))
	b.WriteString(fmt.Sprintf("  %s %d\n", labelStyle.Render("Disabled:"), s.Inactive))

	current := s.Current
	if current == "" {
		current = "none"
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Current:"), current))
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Config:"), path))

	if len(s.Tags) > 0 {
		tags := make([]string, 0, len(s.Tags))
		for tag := range s.Tags {
			tags = append(tags, tag)
		}
		sort.Strings(tags)

		b.WriteString(labelStyle.Render("  Tags:") + "\n")
		for _, tag := range tags {
			b.WriteString(fmt.Sprintf("    %s: %d\n", tag, s.Tags[tag]))
		}
	}
	return b.String()
}
