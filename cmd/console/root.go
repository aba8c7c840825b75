package main

import "github.com/spf13/cobra"

var (
	apiURL   string
	port     string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "cv-console",
	Short: "Browser console for CV intake and the profile warehouse",
}

func init() {
	rootCmd.AddCommand(runCmd)

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the warehouse API (overrides API_BASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "Port to serve the console on (overrides CONSOLE_PORT)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}
