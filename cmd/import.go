package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recoverydesk/recovery-console/internal/api"
	"github.com/recoverydesk/recovery-console/internal/importer"
)

var (
	importDir   string
	importWatch bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-create clients and cases from JSON drop files",
	Long: `Import clients and recovery cases from JSON files in a drop directory.

Each file is a single JSON object:

  {
    "clients": [ {"client_name": "...", "company_name": "...", ...} ],
    "cases":   [ {"client_id": 1, "invoice_number": "...", ...} ]
  }

Records are created through the backend API one at a time; failures are
logged per record and do not abort the rest of the file.

Examples:
  # One-shot import of everything currently in the directory
  recovery-console import --dir ./data/incoming

  # Keep watching the directory for new drop files
  recovery-console import --dir ./data/incoming --watch`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importDir, "dir", "", "Drop directory to import from (default from config import.dir)")
	importCmd.Flags().BoolVar(&importWatch, "watch", false, "Keep watching the directory for new files")

	viper.BindPFlag("import.dir", importCmd.Flags().Lookup("dir"))
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	dir := importDir
	if dir == "" {
		dir = config.Import.Dir
	}
	if dir == "" {
		return fmt.Errorf("no import directory configured (use --dir or import.dir)")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("import directory %s does not exist", dir)
	}

	logger := log.New(os.Stderr, "[import] ", log.LstdFlags)
	apiClient := api.NewClient(api.Options{
		BaseURL: config.API.BaseURL,
		Logger:  logger,
	})

	im := importer.New(apiClient, importer.Options{
		Dir:    dir,
		Watch:  importWatch,
		Logger: logger,
	})
	return im.Run(ctx)
}
