package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	token   string
)

var rootCmd = &cobra.Command{
	Use:   "opentre",
	Short: "OpenTRE CLI - Manage workspace templates and workspaces",
	Long: `OpenTRE CLI is a command-line tool for the OpenTRE management API.

It provides commands to register and inspect workspace templates and to
request and track workspace deployments.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", getEnvOrDefault("OPENTRE_API_URL", "http://localhost:8000"), "OpenTRE API base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("OPENTRE_TOKEN"), "Bearer access token")
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
