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

var workspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"workspace", "ws"},
	Short:   "Manage workspaces",
}

var listWorkspacesCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List active workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, token)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		workspaces, err := c.ListWorkspaces(ctx)
		if err != nil {
			return fmt.Errorf("failed to list workspaces: %w", err)
		}

		if len(workspaces) == 0 {
			fmt.Println("No workspaces found")
			return nil
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, _ := json.MarshalIndent(workspaces, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTEMPLATE\tVERSION\tSTATUS\tCREATED")
		for _, ws := range workspaces {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ws.ID, ws.TemplateName, ws.TemplateVersion, ws.Status, ws.CreatedAt.Format("2006-01-02"))
		}
		w.Flush()

		return nil
	},
}

var getWorkspaceCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(baseURL, token)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ws, err := c.GetWorkspace(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get workspace: %w", err)
		}

		data, _ := json.MarshalIndent(ws, "", "  ")
		fmt.Println(string(data))

		return nil
	},
}

var createWorkspaceCmd = &cobra.Command{
	Use:   "create <template-name>",
	Short: "Request creation of a workspace from a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := types.WorkspaceCreate{
			TemplateName: args[0],
			Properties:   map[string]interface{}{},
		}

		paramsFile, _ := cmd.Flags().GetString("params")
		if paramsFile != "" {
			data, err := os.ReadFile(paramsFile)
			if err != nil {
				return fmt.Errorf("failed to read parameters file: %w", err)
			}
			if err := json.Unmarshal(data, &in.Properties); err != nil {
				return fmt.Errorf("failed to parse parameters file: %w", err)
			}
		}

		c := client.NewClient(baseURL, token)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		id, err := c.CreateWorkspace(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}

		fmt.Printf("Workspace creation accepted: %s\n", id)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(workspacesCmd)
	workspacesCmd.AddCommand(listWorkspacesCmd)
	workspacesCmd.AddCommand(getWorkspaceCmd)
	workspacesCmd.AddCommand(createWorkspaceCmd)

	listWorkspacesCmd.Flags().Bool("json", false, "Output as JSON")
	createWorkspaceCmd.Flags().String("params", "", "JSON file with workspace parameters")
}
