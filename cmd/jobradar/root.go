package main

import (
	"github.com/spf13/cobra"
)

const app = "jobradar"

var (
	// Persistent flags.
	profilePath string
	dbPath      string
	jsonLog     bool
	debug       bool

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobradar searches job boards for listings matching a candidate profile",
		Long: `jobradar queries scrape and API job sources concurrently, removes
cross-source duplicates, scores each listing against the candidate
profile and flags which listings are new since the last run.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "profile.yml", "candidate profile YAML file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "jobradar.db", "seen-listing tracker database")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
}

func Execute() error {
	return rootCmd.Execute()
}
