package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tendermatch/config"
	"tendermatch/internal/usecase"
)

var (
	auditIncludes []string
	auditExcludes []string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Cross-check the raw tender export against the store",
	Long: `Walk the raw tender export directory and compare the exported files
against the tender store, reporting tenders missing from the export and
orphan files with no stored tender.

Examples:
  tendermatch audit
  tendermatch audit --include 'tamil-nadu-*.json'`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringSliceVar(&auditIncludes, "include", nil, "glob patterns for export files to check")
	auditCmd.Flags().StringSliceVar(&auditExcludes, "exclude", nil, "glob patterns for export files to skip")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	pipeline, st, err := openPipeline(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	auditUC := usecase.NewAuditUseCase(pipeline, config.RawTenderDir(cfg.Storage.DataDir), GetLogger())

	result, err := auditUC.Run(auditIncludes, auditExcludes)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	fmt.Printf("Store:  %d tenders\n", result.StoreCount)
	fmt.Printf("Export: %d files\n", result.FileCount)

	if len(result.Missing) == 0 && len(result.Orphans) == 0 {
		fmt.Println("Export matches store.")
		return nil
	}

	if len(result.Missing) > 0 {
		fmt.Printf("\nStored but not exported (%d):\n", len(result.Missing))
		for _, id := range result.Missing {
			fmt.Printf("  %s\n", id)
		}
	}
	if len(result.Orphans) > 0 {
		fmt.Printf("\nExported but not stored (%d):\n", len(result.Orphans))
		for _, id := range result.Orphans {
			fmt.Printf("  %s\n", id)
		}
	}

	return nil
}
