// Command mosee runs the valuation pipeline over a ticker list and
// prints the results.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Patrickdoranlearning/MOSEE/internal/clients/fmp"
	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/filters"
	"github.com/Patrickdoranlearning/MOSEE/internal/interfaces"
	"github.com/Patrickdoranlearning/MOSEE/internal/models"
	"github.com/Patrickdoranlearning/MOSEE/internal/services/analysis"
	"github.com/Patrickdoranlearning/MOSEE/internal/storage"
)

func main() {
	var (
		configPath = flag.String("config", os.Getenv("MOSEE_CONFIG"), "path to TOML config file")
		ticker     = flag.String("ticker", "", "analyze a single ticker and print the full report")
		tickerList = flag.String("tickers", "", "comma-separated universe to screen (default: config tickers)")
		style      = flag.String("style", "", "scoring style preset (default: config style)")
		sortBy     = flag.String("sort", "mosee", "screen sort: mosee, mos, quality, confidence")
		preset     = flag.String("preset", "", "filter preset name (us_only, developed_markets, ...)")
		asJSON     = flag.Bool("json", false, "print JSON instead of a table")
	)
	flag.Parse()

	config, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLogger(config.Logging.Level)

	manager, err := storage.NewManager(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer manager.Close()

	client := fmp.NewClient(config.Clients.FMP.APIKey,
		fmp.WithBaseURL(config.Clients.FMP.BaseURL),
		fmp.WithRateLimit(config.Clients.FMP.RateLimit),
		fmp.WithTimeout(config.Clients.FMP.GetTimeout()),
		fmp.WithLogger(logger),
	)

	service := analysis.NewService(client, manager, config, logger)
	ctx := context.Background()

	if *ticker != "" {
		runAnalyze(ctx, service, strings.ToUpper(*ticker), *asJSON)
		return
	}
	runScreen(ctx, service, config, *tickerList, *style, *sortBy, *preset, *asJSON)
}

func runAnalyze(ctx context.Context, service interfaces.AnalysisService, ticker string, asJSON bool) {
	report, err := service.Analyze(ctx, ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	if asJSON {
		printJSON(report)
		return
	}

	fmt.Printf("%s (%s)\n", report.Ticker, report.Name)
	fmt.Printf("Price: $%.2f  Buy below: $%.2f\n", report.CurrentPrice, report.BuyBelowPrice)
	fmt.Printf("Verdict: %s  Quality: %s  Confidence: %s\n", report.Verdict, report.QualityGrade, report.Confidence)
	fmt.Printf("Recommendation: %s\n", report.Recommendation)

	fmt.Println("\nLenses:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, lens := range report.Lenses {
		fmt.Fprintf(w, "  %s\t%s\t%.0f/100\t%s\n", lens.Philosopher, lens.Grade, lens.Score, lens.Verdict)
	}
	w.Flush()

	if len(report.KeyStrengths) > 0 {
		fmt.Println("\nStrengths:")
		for _, s := range report.KeyStrengths {
			fmt.Printf("  + %s\n", s)
		}
	}
	if len(report.KeyConcerns) > 0 {
		fmt.Println("\nConcerns:")
		for _, c := range report.KeyConcerns {
			fmt.Printf("  - %s\n", c)
		}
	}
}

func runScreen(ctx context.Context, service interfaces.AnalysisService, config *common.Config, tickerList, style, sortBy, preset string, asJSON bool) {
	var tickers []string
	for _, t := range strings.Split(tickerList, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		tickers = config.Tickers
	}

	opts := interfaces.ScreenOptions{
		Style:  models.InvestmentStyle(style),
		SortBy: sortBy,
	}
	if preset != "" {
		filter := filters.Preset(preset)
		if filter == nil {
			fmt.Fprintf(os.Stderr, "Unknown filter preset: %s\n", preset)
			os.Exit(1)
		}
		opts.Filter = filter
	}

	profiles, err := service.Screen(ctx, tickers, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Screen failed: %v\n", err)
		os.Exit(1)
	}

	if asJSON {
		printJSON(profiles)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTICKER\tPRICE\tQUALITY\tBEST MOS\tVERDICT\tCONFIDENCE")
	for _, p := range profiles {
		_, best := p.MOSEE.MOS.Best()
		mos := "n/a"
		if best.Defined {
			mos = fmt.Sprintf("%.2f", best.Value)
		}
		fmt.Fprintf(w, "%d\t%s\t$%.2f\t%.0f\t%s\t%s\t%s\n",
			p.Rank, p.Ticker, p.CurrentPrice, p.QualityScore, mos, p.Verdict, p.Confidence.Level)
	}
	w.Flush()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(1)
	}
}
