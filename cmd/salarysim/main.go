package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fr4nk3nst1ner/salarysim/internal/cache"
	"github.com/fr4nk3nst1ner/salarysim/internal/client"
	"github.com/fr4nk3nst1ner/salarysim/internal/config"
	"github.com/fr4nk3nst1ner/salarysim/internal/dataset"
	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/metrics"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
	"github.com/fr4nk3nst1ner/salarysim/internal/server"
	"github.com/fr4nk3nst1ner/salarysim/internal/simulation"
	"github.com/fr4nk3nst1ner/salarysim/internal/ui"
	"github.com/fr4nk3nst1ner/salarysim/internal/utils"
)

// printExamples displays usage examples for the program
func printExamples(w io.Writer) {
	fmt.Fprintln(w, "\n📋 SalarySim Usage Examples 📋")
	fmt.Fprintln(w, "\n1. Simulate salaries for fully remote senior data scientists:")
	fmt.Fprintln(w, "   salarysim -job-title \"Data Scientist\" -experience SE -remote \"Full remote\"")

	fmt.Fprintln(w, "\n2. Run 5000 simulations with a fixed seed for a reproducible result:")
	fmt.Fprintln(w, "   salarysim -job-title \"Data Engineer\" -experience MI -remote Hybrid -simulations 5000 -seed 42")

	fmt.Fprintln(w, "\n3. List the job titles and experience levels with enough records to simulate:")
	fmt.Fprintln(w, "   salarysim -list")

	fmt.Fprintln(w, "\n4. Print the result as JSON, without the banner:")
	fmt.Fprintln(w, "   salarysim -job-title \"Data Analyst\" -experience EN -remote \"Non remote\" -format json -silence")

	fmt.Fprintln(w, "\n5. Load the dataset from an exported HTML table:")
	fmt.Fprintln(w, "   salarysim -data salaries.html -source html -list")

	fmt.Fprintln(w, "\n6. Download the dataset through a proxy:")
	fmt.Fprintln(w, "   salarysim -data https://example.com/salaries.csv -proxy http://localhost:8080 -list")

	fmt.Fprintln(w, "\n7. Serve the HTTP API on port 9090 using a config file:")
	fmt.Fprintln(w, "   salarysim -serve -port 9090 -config configs/config.yaml")
}

// options holds the parsed command line. Values only override the config
// when the corresponding flag was set explicitly.
type options struct {
	dataPath    string
	source      string
	proxy       string
	jobTitle    string
	experience  string
	remote      string
	simulations int
	seed        int64
	bins        int
	format      string
	configPath  string
	list        bool
	serve       bool
	port        int
	debug       bool
	silence     bool
	examples    bool

	set map[string]bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	fs.StringVar(&o.dataPath, "data", "", "Path or http(s) URL of the salary dataset (CSV or HTML table)")
	fs.StringVar(&o.source, "source", "", "Dataset source: csv, html or postgres")
	fs.StringVar(&o.proxy, "proxy", "", "Proxy URL to use when downloading the dataset")
	fs.StringVar(&o.jobTitle, "job-title", "", "Job title to simulate, e.g. \"Data Scientist\"")
	fs.StringVar(&o.experience, "experience", "", "Experience level to simulate (EN, MI, SE, EX)")
	fs.StringVar(&o.remote, "remote", "", "Remote category: \"Non remote\", \"Hybrid\" or \"Full remote\"")
	fs.IntVar(&o.simulations, "simulations", 0, "Number of simulations (default from config, 1000)")
	fs.Int64Var(&o.seed, "seed", 0, "Random seed; 0 seeds from the clock")
	fs.IntVar(&o.bins, "bins", 0, "Number of histogram bins (default from config, 30)")
	fs.StringVar(&o.format, "format", utils.FormatText, "Output format: text, json or yaml")
	fs.StringVar(&o.configPath, "config", "", "Path to a config file")
	fs.BoolVar(&o.list, "list", false, "List the selectable job titles, experience levels and remote categories")
	fs.BoolVar(&o.serve, "serve", false, "Serve the HTTP API instead of running a single simulation")
	fs.IntVar(&o.port, "port", 0, "HTTP port for -serve (default from config, 8080)")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&o.examples, "examples", false, "Show usage examples")

	// Banner control flags (two aliases for the same functionality)
	silence := fs.Bool("silence", false, "Silence the banner")
	noBanner := fs.Bool("nobanner", false, "Silence the banner (alias for -silence)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.silence = *silence || *noBanner

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if !utils.IsValidFormat(o.format) {
		return nil, fmt.Errorf("invalid format %q. Must be one of: text, json, yaml", o.format)
	}
	o.format = strings.ToLower(o.format)
	return o, nil
}

// applyOverrides copies explicitly set flags over the loaded config
func (o *options) applyOverrides(cfg *config.Config) error {
	if o.set["data"] {
		cfg.Data.Path = o.dataPath
	}
	if o.set["source"] {
		cfg.Data.Source = strings.ToLower(o.source)
	}
	if o.set["proxy"] {
		cfg.Data.Proxy = o.proxy
	}
	if o.set["seed"] {
		cfg.Simulation.Seed = o.seed
	}
	if o.set["bins"] {
		cfg.Simulation.Bins = o.bins
	}
	if o.set["port"] {
		cfg.Server.Port = o.port
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
	return config.Validate(cfg)
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	// Machine readable output stays clean
	ui.PrintBanner(os.Stdout, opts.silence || opts.format != utils.FormatText)

	if opts.examples {
		printExamples(os.Stdout)
		return
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := opts.applyOverrides(cfg); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	appLog := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	defer appLog.Sync()
	if cfg.ConfigFile != "" || cfg.EnvFile != "" {
		appLog.Debug("configuration loaded", map[string]interface{}{
			"config_file": cfg.ConfigFile,
			"env_file":    cfg.EnvFile,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, err := loadRecords(ctx, cfg.Data, opts.format == utils.FormatText && !opts.serve, appLog)
	if err != nil {
		log.Fatalf("Error loading dataset: %v", err)
	}
	idx, err := dataset.NewIndex(records)
	if err != nil {
		log.Fatalf("Error indexing dataset: %v", err)
	}
	metrics.DatasetRecords.Set(float64(idx.Len()))

	if opts.list {
		if err := ui.WriteOptions(os.Stdout, opts.format, ui.NewOptions(idx, cfg.Simulation.MinCategoryCount)); err != nil {
			log.Fatalf("Error writing options: %v", err)
		}
		return
	}

	store, err := newCacheStore(ctx, cfg.Cache, appLog)
	if err != nil {
		log.Fatalf("Error connecting to cache: %v", err)
	}
	sim := simulation.NewSimulator(idx, simulation.NewSource(cfg.Simulation.Seed), appLog)

	if opts.serve {
		svc := server.NewService(server.ServiceDeps{
			Server:    cfg.Server,
			Policy:    cfg.Simulation,
			Index:     idx,
			Simulator: sim,
			Cache:     store,
			Logger:    appLog,
		})
		if err := svc.Start(ctx); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	if err := runOnce(ctx, os.Stdout, opts, cfg, sim, store, appLog); err != nil {
		log.Fatal(err)
	}
}

// runOnce resolves the criteria from the flags, runs one simulation and
// writes the report
func runOnce(
	ctx context.Context,
	w io.Writer,
	opts *options,
	cfg *config.Config,
	sim *simulation.Simulator,
	store cache.Store,
	appLog logger.Logger,
) error {
	if opts.jobTitle == "" || opts.experience == "" || opts.remote == "" {
		return errors.New("-job-title, -experience and -remote are required (use -list to see the choices)")
	}

	category, err := models.ParseRemoteCategory(opts.remote)
	if err != nil {
		return fmt.Errorf("invalid remote category. Must be one of: Non remote, Hybrid, Full remote: %w", err)
	}

	n := cfg.Simulation.Default
	if opts.set["simulations"] {
		n = opts.simulations
	}
	if err := utils.ValidateSimulationCount(n, cfg.Simulation.Min, cfg.Simulation.Max); err != nil {
		return err
	}

	criteria := models.FilterCriteria{
		JobTitle:        opts.jobTitle,
		ExperienceLevel: opts.experience,
		RemoteCategory:  category,
	}
	result, _, err := cache.Memoize(ctx, store, criteria.Key(n), appLog,
		func(ctx context.Context) (*models.SimulationResult, error) {
			return sim.Run(ctx, criteria, n)
		})
	if errors.Is(err, simulation.ErrNoData) {
		ui.PrintNoData(w)
		return nil
	}
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	report, err := ui.NewReport(result, cfg.Simulation.Bins)
	if err != nil {
		return err
	}
	return ui.Write(w, opts.format, report)
}

func loadRecords(ctx context.Context, cfg config.DataConfig, progress bool, appLog logger.Logger) ([]models.SalaryRecord, error) {
	if cfg.Source != dataset.SourcePostgres {
		if client.IsURL(cfg.Path) {
			hc, err := client.CreateHTTPClient(cfg.Proxy)
			if err != nil {
				return nil, err
			}
			return dataset.LoadURL(ctx, hc, cfg.Path, cfg.Source, progress, os.Stderr, appLog)
		}
		return dataset.LoadFile(cfg.Path, cfg.Source, progress, os.Stderr, appLog)
	}

	db, err := dataset.OpenPostgres(ctx, cfg.Postgres.GetDSN())
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return dataset.LoadPostgres(ctx, db, cfg.Table, appLog)
}

func newCacheStore(ctx context.Context, cfg config.CacheConfig, appLog logger.Logger) (cache.Store, error) {
	switch cfg.Driver {
	case cache.DriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		appLog.Info("using redis cache", map[string]interface{}{"address": cfg.Redis.Address, "ttl": cfg.TTL.String()})
		return cache.NewRedisStore(client, cfg.TTL), nil
	case cache.DriverNone:
		return cache.NoopStore{}, nil
	default:
		return cache.NewMemoryStore(cfg.TTL), nil
	}
}
