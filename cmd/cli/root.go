package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "livebundle-cli",
	Short: "livebundle-cli is the command-line interface for livebundle-github.",
	Long:  `A CLI for exercising a running livebundle-github webhook receiver and inspecting the jobs it produced.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&serverURL, "url", "u", "http://localhost:3000", "Webhook receiver base URL")

	if err := viper.BindPFlag("SERVER_URL", rootCmd.PersistentFlags().Lookup("url")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("LB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
