package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/core/services"
	"github.com/SscSPs/hoa_billing_app/internal/middleware"
	"github.com/SscSPs/hoa_billing_app/internal/platform/config"
	"github.com/SscSPs/hoa_billing_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/hoa_billing_app/pkg/database"
)

var errImportFailed = errors.New("import finished with errors")

type runOptions struct {
	Dir     string
	Clean   bool
	Migrate bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run --dir <exports> [--clean]",
		Short: "Import every HOA directory found under --dir and print the JSON result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.Dir) == "" {
				return errors.New("--dir is required")
			}
			logger := newLogger()

			files, err := collectExports(opts.Dir)
			if err != nil {
				return err
			}
			logger.Info("Collected export files", slog.String("dir", opts.Dir), slog.Int("files", len(files)))

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if opts.Migrate {
				if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = middleware.WithLogger(ctx, logger)

			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
			if err != nil {
				return err
			}
			defer database.ClosePgxPool(pool)

			container, err := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool))
			if err != nil {
				return err
			}

			result := container.Import.ImportBatch(ctx, files, domain.ImportOptions{CleanImport: opts.Clean})
			if err := printResult(cmd, result); err != nil {
				return err
			}
			if !result.Success {
				return errImportFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory holding one sub-directory per HOA")
	cmd.Flags().BoolVar(&opts.Clean, "clean", false, "mark the import as a clean import")
	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "apply pending migrations before importing")
	return cmd
}

func printResult(cmd *cobra.Command, result domain.BatchImportResult) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// collectExports reads every regular file under dir, naming each by its slash
// separated path relative to dir ("{hoa}/{file}").
func collectExports(dir string) ([]domain.UploadedFile, error) {
	var files []domain.UploadedFile
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, domain.UploadedFile{Name: filepath.ToSlash(rel), Content: content})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
