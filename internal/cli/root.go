package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tendermatch/config"
	"tendermatch/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tendermatch",
	Short: "Match company profiles against scraped government tenders",
	Long: `tendermatch scrapes government tender portals into a canonical store,
indexes tender embeddings for similarity search, and ranks tenders
against a company profile.

Example usage:
  tendermatch scrape                     # Scrape all configured sources
  tendermatch match -f profile.txt       # Match a company profile file
  tendermatch audit                      # Cross-check the raw tender export`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err = logger.New(cfg.Logging.Level, cfg.Logging.JSON)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tendermatch.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetLogger() *zap.Logger {
	return log
}
