package cmd

import (
	"fmt"
	"os"

	"github.com/carelfelix2/scrapper/config"
	"github.com/carelfelix2/scrapper/internal/api"
	"github.com/carelfelix2/scrapper/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "scrapper",
	Short: "Scrapper - client for the Scrapper web-scraping SaaS",
	Long:  "A command-line client and MCP server for the Scrapper web-scraping SaaS: submit scraping tasks, watch their status, and browse collected product data.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("base-url", "", "API base URL (default http://localhost:8000)")
	rootCmd.PersistentFlags().String("token-file", "", "Path of the durable auth token file")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("token-file"); v != "" {
		cfg.TokenFile = v
	}
}

// buildClient constructs the session store and the API client from config.
// The store rehydrates any persisted token, so an earlier login carries over.
func buildClient() (*session.Store, *api.Client) {
	store := session.New(cfg.TokenFile)
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	client := api.New(cfg.BaseURL, store, api.Options{
		RateLimiter:   limiter,
		MaxConcurrent: cfg.MaxConcurrent,
	})
	return store, client
}
