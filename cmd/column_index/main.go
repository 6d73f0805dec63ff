package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-column-index/api"
	"github.com/gcbaptista/go-column-index/config"
	"github.com/gcbaptista/go-column-index/internal/engine"
	"github.com/gcbaptista/go-column-index/internal/indexing"
	"github.com/gcbaptista/go-column-index/internal/ingestion"
	"github.com/gcbaptista/go-column-index/internal/report"
	"github.com/gcbaptista/go-column-index/services"
)

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var columns, queries stringList

	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to a YAML configuration file")
		csvPath    = flag.String("csv", "", "Path to the CSV data file (overrides the config)")
		port       = flag.Int("port", 0, "Port to run the server on (overrides the config)")
		serve      = flag.Bool("serve", false, "Start the HTTP API after building the indexes")
		out        = flag.String("out", "", "Also write the build report to this file")
		trace      = flag.Bool("trace", false, "Trace code-tree merges and posting-tree events for every index")
		rbSnap     = flag.Bool("rb-snap", false, "Render the posting tree after each structural insert")
	)
	flag.Var(&columns, "index", "Column to index (repeatable; overrides the config)")
	flag.Var(&queries, "query", "Equality lookup to run after the build, as index=token (repeatable)")

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Column Index - equality lookups over CSV columns via optimal prefix codes\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s --csv students.csv --index guardian            # Build one index, print the report\n", os.Args[0])
		fmt.Printf("  %s --csv students.csv --index guardian --serve    # Build and expose the HTTP API\n", os.Args[0])
		fmt.Printf("  %s --config config.yml --query guardian=mother    # Build from config, run a lookup\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Column Index v1.0.0\n")
		return
	}

	cfg, err := loadConfig(*configPath, *csvPath, *port, columns)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	reportWriter, closeReport, err := openReportWriter(*out)
	if err != nil {
		log.Fatalf("Failed to open report output: %v", err)
	}
	defer closeReport()

	rowStore, err := ingestion.LoadCSV(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}
	log.Printf("Loaded %d rows from %s", rowStore.Len(), cfg.DataFile)

	eng, err := engine.NewEngine(rowStore, reportWriter)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	if err := buildIndexes(eng, cfg, *trace, *rbSnap, reportWriter); err != nil {
		log.Fatalf("Failed to build indexes: %v", err)
	}

	if err := runQueries(eng, queries, reportWriter); err != nil {
		log.Fatalf("Query error: %v", err)
	}

	if !*serve {
		return
	}

	// Initialize Gin router
	router := gin.Default()
	api.SetupRoutes(router, eng, rowStore)

	log.Printf("Starting server on port %d...", cfg.Server.Port)
	if err := router.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadConfig merges the optional YAML config with command-line overrides.
func loadConfig(path, csvPath string, port int, columns stringList) (config.Config, error) {
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if csvPath != "" {
		cfg.DataFile = csvPath
	}
	if cfg.DataFile == "" {
		return config.Config{}, fmt.Errorf("no data file given; use --csv or set dataFile in the config")
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if len(columns) > 0 {
		cfg.Indexes = cfg.Indexes[:0]
		for _, col := range columns {
			cfg.Indexes = append(cfg.Indexes, config.IndexSettings{Name: col, Column: col})
		}
	}
	if len(cfg.Indexes) == 0 {
		return config.Config{}, fmt.Errorf("no indexes given; use --index or set indexes in the config")
	}
	return cfg, nil
}

// openReportWriter returns stdout, optionally teed into a file.
func openReportWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return io.MultiWriter(os.Stdout, f), func() { _ = f.Close() }, nil
}

// buildIndexes creates every configured index and prints its report.
func buildIndexes(eng *engine.Engine, cfg config.Config, trace, rbSnap bool, w io.Writer) error {
	indexer, err := indexing.NewService(eng.RowStore())
	if err != nil {
		return err
	}

	for _, settings := range cfg.Indexes {
		if trace {
			settings.TraceMerges = true
			settings.VerboseFixup = true
		}
		if rbSnap {
			settings.SnapshotAfterFixup = true
		}

		freq, err := indexer.ColumnFrequencies(settings)
		if err != nil {
			return err
		}
		if err := report.WriteFrequencyTable(w, settings.Column, freq); err != nil {
			return err
		}

		if err := eng.CreateIndex(settings); err != nil {
			return err
		}

		accessor, err := eng.GetIndex(settings.Name)
		if err != nil {
			return err
		}
		instance, ok := accessor.(*engine.IndexInstance)
		if !ok {
			continue
		}
		if err := report.WriteIndexReport(w, instance.Index); err != nil {
			return err
		}
	}
	return nil
}

// runQueries executes index=token lookups and pretty-prints the matched rows.
func runQueries(eng *engine.Engine, queries stringList, w io.Writer) error {
	for _, q := range queries {
		name, token, ok := strings.Cut(q, "=")
		if !ok {
			return fmt.Errorf("bad query %q, want index=token", q)
		}

		accessor, err := eng.GetIndex(name)
		if err != nil {
			return err
		}
		result, err := accessor.Search(services.SearchQuery{Token: token})
		if err != nil {
			return err
		}

		settings := accessor.Settings()
		title := fmt.Sprintf("%s = %q (%d hits, %dms)", settings.Column, token, result.Total, result.Took)
		if err := report.WriteQueryResult(w, title, result.Rows, []string{settings.Column}); err != nil {
			return err
		}
	}
	return nil
}
