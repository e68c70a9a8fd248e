package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/opentre/opentre/pkg/client"
	"github.com/opentre/opentre/pkg/types"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"template", "tpl"},
	Short:   "Manage workspace templates",
}

var listTemplatesCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List current workspace templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, token)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		templates, err := c.ListWorkspaceTemplates(ctx)
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		if len(templates) == 0 {
			fmt.Println("No templates found")
			return nil
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, _ := json.MarshalIndent(templates, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTITLE\tDESCRIPTION")
		for _, tpl := range templates {
			fmt.Fprintf(w, "%s\t%s\t%s\n", tpl.Name, tpl.Title, tpl.Description)
		}
		w.Flush()

		return nil
	},
}

var getTemplateCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show the current version of a workspace template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, token)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		tmpl, err := c.GetWorkspaceTemplate(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}

		data, _ := json.MarshalIndent(tmpl, "", "  ")
		fmt.Println(string(data))

		return nil
	},
}

var registerTemplateCmd = &cobra.Command{
	Use:   "register <file>",
	Short: "Register a new workspace template version from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read template file: %w", err)
		}

		var reg types.TemplateRegistration
		if err := json.Unmarshal(data, &reg); err != nil {
			return fmt.Errorf("failed to parse template file: %w", err)
		}

		c := client.NewClient(baseURL, token)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		tmpl, err := c.RegisterWorkspaceTemplate(ctx, reg)
		if err != nil {
			return fmt.Errorf("failed to register template: %w", err)
		}

		fmt.Printf("Registered template %s version %s (current: %t)\n", tmpl.Name, tmpl.Version, tmpl.Current)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(listTemplatesCmd)
	templatesCmd.AddCommand(getTemplateCmd)
	templatesCmd.AddCommand(registerTemplateCmd)

	listTemplatesCmd.Flags().Bool("json", false, "Output as JSON")
}
