package service

import (
	"os"

	"publicator/app/config"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "publicator",
	Short:         "Schedule posts to social-media accounts",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("publicator version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to the YAML config file")
	rootCmd.AddCommand(versionCmd)
}

func defaultConfigPath() string {
	if v := os.Getenv("PUBLICATOR_CONFIG"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// Execute runs the command line and reports the first error on stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrf("Error: %v\n", err)
	}
	return err
}
