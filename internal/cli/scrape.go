package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"tendermatch/internal/adapter/fetch"
	"tendermatch/internal/adapter/scraper"
	"tendermatch/internal/domain"
	"tendermatch/internal/usecase"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape configured tender sources and store them",
	Long: `Scrape every configured tender portal, normalize the listings into
canonical tender records, embed them and append them to the store.

A source that fails to scrape is reported and skipped; the remaining
sources still run.`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	pipeline, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	fetcher := fetch.NewClient(time.Duration(cfg.Scrape.FetchTimeoutSec) * time.Second)
	sc := scraper.NewScraper(fetcher, scraper.NewRegistry(), cfg.Scrape.MaxPerSource, GetLogger())

	scrapeUC := usecase.NewScrapeUseCase(
		sc,
		pipeline,
		cfg.Sources,
		time.Duration(cfg.Scrape.DelaySeconds)*time.Second,
		GetLogger(),
	)

	fmt.Printf("Scraping %d sources...\n", len(cfg.Sources))

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	report := scrapeUC.Run(progress)

	fmt.Printf("\nScrape %s: %s\n", report.Status, report.Message)
	for _, src := range report.Sources {
		if src.Err != "" {
			fmt.Printf("  %-40s failed: %s\n", src.Name, src.Err)
		} else {
			fmt.Printf("  %-40s %d tenders\n", src.Name, src.TenderCount)
		}
	}

	if report.Status == domain.StatusError {
		return fmt.Errorf("scrape failed: %s", report.Message)
	}
	return nil
}
