// Package cli wires the validation engine into a line-oriented command
// line tool.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"translation-validator/internal/batch"
	"translation-validator/internal/cache"
	"translation-validator/internal/commands"
	"translation-validator/internal/config"
	"translation-validator/internal/validate"
	"translation-validator/internal/worker"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options holds the language selection flags shared by all subcommands.
type options struct {
	dialect     string
	cases       []string
	genders     []string
	pluralCount int
	profile     string
	asJSON      bool
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "translation-validator",
		Short: "Validate and normalize game localization strings",
		Long: `Checks that a translation's string commands are compatible with the
base language string, reports every deviation with position and severity,
and emits the canonical form of valid strings.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.dialect, "dialect", "d", cfg.Dialect, "command dialect: newgrf, game-script or openttd")
	pf.StringSliceVarP(&opts.cases, "cases", "c", cfg.Cases, "grammatical cases of the language")
	pf.StringSliceVarP(&opts.genders, "genders", "g", cfg.Genders, "grammatical genders of the language")
	pf.IntVarP(&opts.pluralCount, "plural-count", "p", cfg.PluralCount, "number of plural forms of the language")
	pf.StringVar(&opts.profile, "profile", "", "TOML language profile, overrides the language flags")
	pf.BoolVar(&opts.asJSON, "json", false, "machine readable output")

	rootCmd.AddCommand(baseCmd(opts))
	rootCmd.AddCommand(translationCmd(opts))
	rootCmd.AddCommand(batchCmd(opts, cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func baseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "base <text>",
		Short: "Validate a base language string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := buildLanguageConfig(opts)
			if err != nil {
				return err
			}
			result := validate.ValidateBase(lang, args[0])
			printResult(result, opts.asJSON)
			if result.HasErrors() {
				os.Exit(1)
			}
			return nil
		},
	}
}

func translationCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "translation <base> <case> <translation>",
		Short: "Validate a translation against its base string",
		Long: `Validates a translation against the given base language string.
Use "default" as the case when no case restriction is requested.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := buildLanguageConfig(opts)
			if err != nil {
				return err
			}
			result := validate.ValidateTranslation(lang, args[0], args[1], args[2])
			printResult(result, opts.asJSON)
			if result.HasErrors() {
				os.Exit(1)
			}
			return nil
		},
	}
}

func batchCmd(opts *options, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <path>",
		Short: "Validate a translation file or every file under a directory",
		Long: `Validates tab-separated translation files in bulk. Each line holds
base<TAB>translation or base<TAB>case<TAB>translation. Results are cached
in PostgreSQL when DATABASE_URL is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, cfg, args[0])
		},
	}
}

// buildLanguageConfig resolves flags and an optional profile file into
// the engine's language configuration.
func buildLanguageConfig(opts *options) (validate.LanguageConfig, error) {
	dialectName := opts.dialect
	cases, genders, plurals := opts.cases, opts.genders, opts.pluralCount

	if opts.profile != "" {
		profile, err := config.LoadProfile(opts.profile)
		if err != nil {
			return validate.LanguageConfig{}, err
		}
		dialectName = profile.Dialect
		cases, genders, plurals = profile.Cases, profile.Genders, profile.PluralCount
	}

	dialect, err := commands.ParseDialect(dialectName)
	if err != nil {
		return validate.LanguageConfig{}, err
	}
	return validate.LanguageConfig{
		Dialect:     dialect,
		Cases:       cases,
		Genders:     genders,
		PluralCount: plurals,
	}, nil
}

// rowResult pairs one batch row with its validation outcome.
type rowResult struct {
	File   string                    `json:"file"`
	Line   int                       `json:"line"`
	Result validate.ValidationResult `json:"result"`
}

// runBatch handles the `batch` command.
func runBatch(opts *options, cfg *config.Config, root string) error {
	ctx, cancel := setupContext()
	defer cancel()

	lang, err := buildLanguageConfig(opts)
	if err != nil {
		return err
	}

	paths, err := batch.Walk(root)
	if err != nil {
		return err
	}

	var rows []batch.Row
	for _, path := range paths {
		fileRows, err := batch.ReadFile(path)
		if err != nil {
			return err
		}
		rows = append(rows, fileRows...)
	}
	log.Info().Int("rows", len(rows)).Int("files", len(paths)).Msg("Starting batch validation")

	resultCache, closeCache, err := openCache(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer closeCache()

	pool := worker.NewPool[batch.Row, validate.ValidationResult](cfg.WorkerCount,
		func(ctx context.Context, row batch.Row) (validate.ValidationResult, error) {
			var key string
			if resultCache != nil {
				key = cache.Key(&lang, row.Case, row.Base, row.Translation)
				if cached, ok := resultCache.Get(ctx, key); ok {
					return cached, nil
				}
			}
			result := validate.ValidateTranslation(lang, row.Base, row.Case, row.Translation)
			if resultCache != nil {
				if err := resultCache.Set(ctx, key, result); err != nil {
					log.Warn().Err(err).Msg("Failed to cache validation result")
				}
			}
			return result, nil
		},
	)
	tasks := pool.Execute(ctx, rows)

	errorCount, warningCount := 0, 0
	var jsonOut []rowResult
	for _, task := range tasks {
		result := task.Result
		for _, e := range result.Errors {
			if e.Severity == validate.SeverityError {
				errorCount++
			} else {
				warningCount++
			}
		}
		if opts.asJSON {
			jsonOut = append(jsonOut, rowResult{File: task.Input.File, Line: task.Input.Line, Result: result})
			continue
		}
		if len(result.Errors) > 0 {
			fmt.Printf("%s:%d:\n", task.Input.File, task.Input.Line)
			printResult(result, false)
		}
	}
	if opts.asJSON {
		if err := json.NewEncoder(os.Stdout).Encode(jsonOut); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
	}

	log.Info().
		Int("rows", len(rows)).
		Int("errors", errorCount).
		Int("warnings", warningCount).
		Msg("Batch validation complete")

	if errorCount > 0 {
		os.Exit(1)
	}
	return nil
}

// openCache connects the optional result cache. An empty database URL
// disables it.
func openCache(ctx context.Context, databaseURL string) (*cache.ResultCache, func(), error) {
	if databaseURL == "" {
		return nil, func() {}, nil
	}

	pgPool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	resultCache := cache.NewResultCache(pgPool)
	if err := resultCache.EnsureSchema(ctx); err != nil {
		pgPool.Close()
		return nil, nil, err
	}
	if err := resultCache.Preload(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to preload cache")
	}

	return resultCache, pgPool.Close, nil
}

var (
	errorKeyword   = color.New(color.FgRed, color.Bold).Sprint("ERROR")
	warningKeyword = color.New(color.FgYellow).Sprint("WARNING")
)

// printResult renders one validation result, either as JSON or as
// line-oriented human output.
func printResult(result validate.ValidationResult, asJSON bool) {
	if asJSON {
		if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
			log.Error().Err(err).Msg("Encode output")
		}
		return
	}

	for _, e := range result.Errors {
		keyword := warningKeyword
		if e.Severity == validate.SeverityError {
			keyword = errorKeyword
		}
		line := keyword
		if e.PosBegin != nil {
			line += fmt.Sprintf(" at %d", *e.PosBegin)
			if e.PosEnd != nil {
				line += fmt.Sprintf(" to %d", *e.PosEnd)
			}
		}
		line += ": " + e.Message
		if e.Suggestion != nil {
			line += " HINT: " + *e.Suggestion
		}
		fmt.Println(line)
	}
	if result.Normalized != nil {
		fmt.Printf("NORMALIZED:%s\n", *result.Normalized)
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
