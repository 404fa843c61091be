package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/doc-intake/internal/config"
	"github.com/jonathan/doc-intake/internal/history"
	"github.com/jonathan/doc-intake/internal/observability"
	"github.com/jonathan/doc-intake/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Process one or more document files through the intake pipeline",
	Long: `Reads each file, detects its content type from the extension (.pdf, .eml,
.json, anything else is treated as plain text), and runs the full intake:
classification, the format-specific extractor, and history recording.

Without --db-url or DATABASE_URL the results are kept in memory and only
printed; with a database every stage is persisted and can be inspected later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

var (
	processConfigPath  string
	processID          string
	processType        string
	processWorkers     int
	processVerbose     bool
	processDatabaseURL string
)

func init() {
	processCmd.Flags().StringVar(&processConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	processCmd.Flags().StringVar(&processID, "id", "", "Document id (single file only; generated when empty)")
	processCmd.Flags().StringVarP(&processType, "type", "t", "", "Force content type: text, email, json, or pdf_base64")
	processCmd.Flags().IntVarP(&processWorkers, "workers", "w", 0, "Concurrent intakes (defaults to 4)")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print detailed processing output")
	processCmd.Flags().StringVar(&processDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var cfg config.Config
	if processConfigPath != "" {
		loadedCfg, err := config.LoadConfig(processConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = processWorkers
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = processVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = processDatabaseURL
	}
	cfg = cfg.MergeWithDefaults(config.Default())

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if processID != "" && len(args) > 1 {
		return fmt.Errorf("--id can only be used with a single file")
	}

	store, closeStore, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeStore()

	pipe := pipeline.New(store)
	printer := observability.NewPrinter(os.Stdout)

	// stdout is shared across workers; results are printed under a lock so
	// boxes from concurrent intakes do not interleave.
	var printMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for _, path := range args {
		g.Go(func() error {
			req, err := requestFromFile(path)
			if err != nil {
				return err
			}

			result, err := pipe.Process(gctx, req)
			if err != nil {
				return fmt.Errorf("failed to process %s: %w", path, err)
			}

			printMu.Lock()
			defer printMu.Unlock()
			fmt.Printf("%s: %s (id %s)\n", path, result.Status, req.ID)
			if cfg.Verbose {
				printer.PrintClassification(&result.Classification)
				printer.PrintPDFAnalysis(result.PDFAnalysis)
				printer.PrintEmailAnalysis(result.EmailAnalysis)
				printer.PrintValidation(result.JSONAnalysis)
			}
			return nil
		})
	}

	return g.Wait()
}

// openStore connects to PostgreSQL when a URL is configured and falls back
// to an in-memory store otherwise.
func openStore(ctx context.Context, databaseURL string) (history.Store, func(), error) {
	if databaseURL == "" {
		return history.NewMemoryStore(), func() {}, nil
	}

	store, err := history.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}

// requestFromFile reads a document file and builds the intake request for it.
// PDF files are base64-encoded; the content type follows the extension unless
// forced with --type.
func requestFromFile(path string) (pipeline.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	contentType := processType
	if contentType == "" {
		contentType = contentTypeForFile(path)
	}

	content := string(data)
	if contentType == pipeline.ContentTypePDFBase64 && !strings.HasPrefix(content, "JVBERi") {
		content = base64.StdEncoding.EncodeToString(data)
	}

	id := processID
	if id == "" {
		id = uuid.New().String()
	}

	return pipeline.Request{
		ID:          id,
		Content:     content,
		ContentType: contentType,
		Metadata:    map[string]any{"filename": filepath.Base(path)},
	}, nil
}

// contentTypeForFile maps a file extension to an intake content type.
func contentTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pipeline.ContentTypePDFBase64
	case ".eml":
		return pipeline.ContentTypeEmail
	case ".json":
		return pipeline.ContentTypeJSON
	default:
		return pipeline.ContentTypeText
	}
}
