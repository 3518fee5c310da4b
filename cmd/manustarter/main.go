package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/manustarter/manustarter/internal/config"
	"github.com/manustarter/manustarter/internal/core/auth"
	"github.com/manustarter/manustarter/internal/core/generator"
	"github.com/manustarter/manustarter/internal/core/testcase"
	"github.com/manustarter/manustarter/internal/export"
	"github.com/manustarter/manustarter/internal/infra/logger"
	"github.com/manustarter/manustarter/internal/llm"
	"github.com/manustarter/manustarter/internal/server"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
)

var (
	cfgFile     string
	debug       bool
	logFilePath string

	caseType   string
	moduleName string
	caseCount  int
	targetURL  string
	format     string
	outFile    string
)

var v *viper.Viper

var rootCmd = &cobra.Command{
	Use:           "manustarter",
	Short:         "Manustarter - AI-assisted manual test case generator",
	Long:          `Manustarter asks a generative text service for manual QA test cases and always returns exactly the number requested.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(debug, logFilePath); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Close()

		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		provider, err := llm.CreateProviderOrUnavailable(cfg.ProviderConfig())
		if err != nil {
			logger.Warn("AI provider unavailable, generation requests will fail",
				logger.String("provider", cfg.Provider),
				logger.Err(err))
		}
		defer func() { _ = provider.Close() }()

		gen, err := generator.New(provider, generator.Options{
			Temperature:      cfg.Temperature,
			MaxTokens:        cfg.MaxTokens,
			StructuredOutput: cfg.StructuredOutput,
		})
		if err != nil {
			return err
		}

		logger.Info("Manustarter starting",
			logger.String("version", version),
			logger.String("environment", cfg.Environment),
			logger.String("provider", provider.Name()),
			logger.String("model", cfg.Model),
			logger.String("auth", auth.ForAPIKey(cfg.APIKey, cfg.AuthHeader).Type()),
			logger.String("api_key", auth.RedactString(cfg.APIKey)))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(gen, server.Options{
			Addr:           cfg.Addr(),
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: cfg.AllowedMethods,
			AllowedHeaders: cfg.AllowedHeaders,
			RequestTimeout: cfg.RequestTimeout,
		}).Run(ctx)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate test cases once and print or export them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if debug || logFilePath != "" {
			path := logFilePath
			if path == "" {
				path = "stderr"
			}
			if err := logger.Init(debug, path); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Close()
		}

		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		raw := testcase.RawRequest{
			TestCaseType: resolveCategory(caseType),
			ModuleName:   moduleName,
			URL:          targetURL,
		}
		if cmd.Flags().Changed("count") {
			raw.NumTestCases = &caseCount
		}
		req, err := testcase.Validate(raw)
		if err != nil {
			return err
		}

		write, err := outputWriter(format)
		if err != nil {
			return err
		}

		provider, err := llm.CreateProvider(cfg.ProviderConfig())
		if err != nil {
			if cfg.APIKey == "" {
				return fmt.Errorf("%w: set %s or pass --api-key", err, config.GetEnvVarName("api_key"))
			}
			return err
		}
		defer func() { _ = provider.Close() }()

		gen, err := generator.New(provider, generator.Options{
			Temperature:      cfg.Temperature,
			MaxTokens:        cfg.MaxTokens,
			StructuredOutput: cfg.StructuredOutput,
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
		defer cancel()

		res, err := gen.GenerateValidated(ctx, req)
		if err != nil {
			return err
		}

		if res.Tier == testcase.TierNone {
			fmt.Fprintln(os.Stderr, "Warning: the model response could not be parsed, template test cases were used")
		}

		if err := write(res.Collection, req); err != nil {
			return err
		}

		if outFile != "" {
			if err := export.ToFile(outFile, res.Collection); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "✓ Saved %d test cases to %s\n", res.TotalCount, outFile)
		}
		return nil
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema expected from the model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := testcase.SchemaJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("manustarter %s\n", version)
	},
}

func outputWriter(format string) (func(*testcase.Collection, testcase.Request) error, error) {
	if strings.EqualFold(format, "table") {
		return func(c *testcase.Collection, req testcase.Request) error {
			title := fmt.Sprintf("%s: %s", req.Category(), req.ModuleName())
			fmt.Print(export.RenderTable(title, c, 0))
			return nil
		}, nil
	}

	if strings.EqualFold(format, "xlsx") {
		return nil, fmt.Errorf("xlsx cannot be printed, use --out cases.xlsx")
	}
	write, err := export.Writer(format)
	if err != nil {
		return nil, err
	}
	return func(c *testcase.Collection, _ testcase.Request) error {
		return write(os.Stdout, c)
	}, nil
}

// resolveCategory accepts short forms like "security" for "Security Test Cases".
// Unknown values pass through so validation reports them.
func resolveCategory(s string) string {
	s = strings.TrimSpace(s)
	for _, c := range testcase.Categories {
		name := string(c)
		short := strings.TrimSuffix(name, " Test Cases")
		if strings.EqualFold(s, name) || strings.EqualFold(s, short) {
			return name
		}
	}
	return s
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ~/.manustarter/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "Enable debug logging")
	pf.StringVar(&logFilePath, "log-file", "", "Write logs to this file instead of stdout")
	pf.String("provider", "", "AI provider (openrouter|openai|claude|gemini|ollama|llamacpp)")
	pf.String("model", "", "Model name")
	pf.String("api-key", "", "API key for the provider")
	pf.String("base-url", "", "Override the provider base URL")

	generateCmd.Flags().StringVarP(&caseType, "type", "t", string(testcase.Functional), "Test case type, e.g. \"Security Test Cases\" or \"security\"")
	generateCmd.Flags().StringVarP(&moduleName, "module", "m", "", "Module or feature under test")
	generateCmd.Flags().IntVarP(&caseCount, "count", "c", testcase.DefaultCount, "Number of test cases (1-50)")
	generateCmd.Flags().StringVarP(&targetURL, "url", "u", "", "URL where the tests will be executed")
	generateCmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table|json|yaml)")
	generateCmd.Flags().StringVarP(&outFile, "out", "o", "", "Also export to a file (.json, .yaml or .xlsx)")
	_ = generateCmd.MarkFlagRequired("module")
	_ = generateCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(serveCmd, generateCmd, schemaCmd, versionCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		v = config.New(cfgFile)
		for _, name := range []string{"provider", "model", "api-key", "base-url"} {
			if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), pf.Lookup(name)); err != nil {
				return err
			}
		}
		return nil
	}
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
