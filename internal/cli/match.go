package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tendermatch/internal/adapter/llm"
	"tendermatch/internal/domain"
	"tendermatch/internal/port"
	"tendermatch/internal/usecase"
)

var (
	matchProfileFile string
	matchProfileText string
	matchTopK        int
	matchJSONOutput  bool
	matchNoLLM       bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a company profile against stored tenders",
	Long: `Extract structured company information from a profile, embed it and
rank stored tenders by similarity.

Examples:
  tendermatch match -t "Acme Infra. We provide road construction services."
  tendermatch match -f profile.txt
  tendermatch match -f profile.txt --json`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchProfileFile, "file", "f", "", "company profile file (txt)")
	matchCmd.Flags().StringVarP(&matchProfileText, "text", "t", "", "company profile text")
	matchCmd.Flags().IntVarP(&matchTopK, "top-k", "k", 0, "number of recommendations (default from config)")
	matchCmd.Flags().BoolVar(&matchJSONOutput, "json", false, "output the full match report as JSON")
	matchCmd.Flags().BoolVar(&matchNoLLM, "no-llm", false, "skip the LLM and use heuristic extraction only")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if matchProfileFile == "" && matchProfileText == "" {
		return fmt.Errorf("provide a profile with --file or --text")
	}

	cfg := GetConfig()

	pipeline, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var extractionLLM port.LLM
	if !matchNoLLM {
		extractionLLM = llm.NewOllamaClient(
			cfg.Extraction.BaseURL,
			cfg.Extraction.Model,
			time.Duration(cfg.Extraction.TimeoutSec)*time.Second,
		)
	}
	extractor := usecase.NewProfileExtractor(extractionLLM, GetLogger())

	topK := cfg.Matching.TopK
	if matchTopK > 0 {
		topK = matchTopK
	}

	matchUC := usecase.NewMatchUseCase(pipeline, extractor, topK, cfg.Matching.DistanceScale, GetLogger())

	var report domain.MatchReport
	if matchProfileFile != "" {
		content, err := os.ReadFile(matchProfileFile)
		if err != nil {
			return fmt.Errorf("failed to read profile file: %w", err)
		}
		fileType := strings.TrimPrefix(filepath.Ext(matchProfileFile), ".")
		report = matchUC.MatchProfileFile(content, fileType)
	} else {
		report = matchUC.MatchProfile(matchProfileText)
	}

	if matchJSONOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if report.Status != domain.StatusSuccess {
		return fmt.Errorf("match failed: %s", report.Message)
	}

	fmt.Printf("Company: %s\n", report.CompanyInfo.Name)
	fmt.Printf("Services: %s\n\n", strings.Join(report.CompanyInfo.Services, ", "))

	if len(report.Recommendations) == 0 {
		fmt.Println("No matching tenders found. Run 'tendermatch scrape' first.")
		return nil
	}

	fmt.Printf("Top %d matching tenders:\n\n", len(report.Recommendations))
	for i, rec := range report.Recommendations {
		fmt.Printf("%2d. [%5.1f%%] %s\n", i+1, rec.SimilarityScore, rec.TenderTitle)
		fmt.Printf("    source: %s", rec.TenderDetails.Source)
		if rec.TenderDetails.Deadline != "" {
			fmt.Printf("  deadline: %s", rec.TenderDetails.Deadline)
		}
		if rec.TenderDetails.Amount != nil {
			fmt.Printf("  amount: %.0f", *rec.TenderDetails.Amount)
		}
		fmt.Printf("\n    %s\n", rec.TenderDetails.URL)
	}

	return nil
}
