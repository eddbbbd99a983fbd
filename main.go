// Package main provides the seo-analyzer command line tool and API server.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seo-analyzer <url>",
	Short: "Analyze a web page for common SEO problems",
	Long: `seo-analyzer fetches a single web page, extracts its on-page SEO
signals (title, meta description, headings, images, keyword frequency,
structured data), checks them against fixed best-practice thresholds and
prints a scored report.

The extracted data and the report are also written to a JSON artifact so
a run can be inspected later or consumed by other tools.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runAnalyze,
	SilenceErrors: true,
}

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func main() {
	// Load environment configuration
	loadEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
