package cmd

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmarsters/satellite-imagery-aesthetics/internal/config"
	"github.com/dmarsters/satellite-imagery-aesthetics/internal/logging"
	"github.com/dmarsters/satellite-imagery-aesthetics/internal/taxonomy"
	"github.com/dmarsters/satellite-imagery-aesthetics/internal/tools"
)

var (
	cfgPath   string
	transport string
	port      int
	logLevel  string
	dataPath  string
)

var rootCmd = &cobra.Command{
	Use:   "satellite-aesthetics",
	Short: "MCP server for satellite-imagery aesthetic parameters",
	Long: `satellite-aesthetics serves a fixed taxonomy of satellite-imagery
aesthetic parameters (imagery type, altitude perspective, feature emphasis,
aesthetic strength) as MCP tools, for LLM clients that turn the structured
results into image-enhancement prompts.

Run without arguments to serve over stdio.`,
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Config file path (default: .satellite-aesthetics.yaml next to the executable)")
	rootCmd.Flags().StringVar(&transport, "transport", "",
		"Transport: stdio or sse (overrides config)")
	rootCmd.Flags().IntVar(&port, "port", 0,
		"SSE listen port (overrides config)")
	rootCmd.Flags().StringVar(&logLevel, "log", "",
		"Log level: debug, info, warn, error (overrides config)")
	rootCmd.Flags().StringVar(&dataPath, "data", "",
		"External taxonomy dataset file (overrides config; default is the embedded dataset)")
}

// loadConfig resolves the effective configuration: file (or defaults), then
// flag overrides, then validation.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if cfgPath != "" {
		cfg, err = config.LoadFromPath(cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if transport != "" {
		cfg.Transport = transport
	}
	if port != 0 {
		cfg.Port = port
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTaxonomy loads the configured dataset. Failure here is fatal for the
// server: nothing can be served without the tables.
func loadTaxonomy(cfg *config.Config, log *zap.Logger) (*taxonomy.Taxonomy, error) {
	var tax *taxonomy.Taxonomy
	var err error
	source := cfg.DataPath
	if source == "" {
		source = "embedded"
		tax, err = taxonomy.Load()
	} else {
		tax, err = taxonomy.LoadFile(cfg.DataPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	imagery, altitudes, emphases, strengths := tax.Counts()
	log.Info("taxonomy loaded",
		zap.String("source", source),
		zap.Int("imagery_profiles", imagery),
		zap.Int("altitude_perspectives", altitudes),
		zap.Int("feature_emphasis", emphases),
		zap.Int("aesthetic_strengths", strengths))
	return tax, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tax, err := loadTaxonomy(cfg, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}

	srv := tools.NewServer(tax, log)

	switch cfg.Transport {
	case config.TransportSSE:
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info("serving MCP over SSE", zap.String("addr", addr))
		return server.NewSSEServer(srv).Start(addr)
	default:
		log.Info("serving MCP over stdio")
		return server.ServeStdio(srv)
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
