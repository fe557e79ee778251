package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"claudewarp/config/models"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("format", "f", "table", "Output format: table, json, yaml or simple")
	listCmd.Flags().StringP("search", "s", "", "Only list profiles matching the query")
	listCmd.Flags().Bool("all", false, "Include the built-in profile")
}

// listOutput is the json/yaml document printed by list
type listOutput struct {
	Current  string          `json:"current" yaml:"current"`
	Total    int             `json:"total" yaml:"total"`
	Profiles []models.Record `json:"profiles" yaml:"profiles"`
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List proxy profiles",
	Long: `List the saved proxy profiles. The current profile is marked with *.

Credentials are masked in every format; use "cw export" to print them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		query, _ := cmd.Flags().GetString("search")
		all, _ := cmd.Flags().GetBool("all")

		m, err := newManager()
		if err != nil {
			return err
		}

		set := m.List()
		if query != "" {
			if set, err = m.Search(query); err != nil {
				return err
			}
		}
		if !all {
			set = set.Filter(func(p models.Profile) bool { return !p.IsBuiltin() })
		}
		profiles := set.All()
		current := m.CurrentName()
		out := cmd.OutOrStdout()

		switch format = strings.ToLower(format); format {
		case "table":
			if len(profiles) == 0 {
				printWarning(cmd.ErrOrStderr(), "No profiles found. Add one with: cw add")
				return nil
			}
			fmt.Fprintln(out, renderProfileTable(profiles, current))
			if current != "" {
				fmt.Fprintln(out, dimStyle.Render("* current profile"))
			}
		case "simple":
			for _, p := range profiles {
				marker := " "
				if p.Name == current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\n", marker, p.Name)
			}
		case "json", "yaml":
			doc := listOutput{Current: current, Total: len(profiles), Profiles: make([]models.Record, 0, len(profiles))}
			for _, p := range profiles {
				doc.Profiles = append(doc.Profiles, maskedRecord(p))
			}
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(doc)
		default:
			return fmt.Errorf("unknown format %q (expected table, json, yaml or simple)", format)
		}
		return nil
	},
}
