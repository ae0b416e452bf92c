// Package main is the meshi CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/meshi/internal/catalog"
	"github.com/hyperjump/meshi/internal/cli"
	"github.com/hyperjump/meshi/internal/config"
	"github.com/hyperjump/meshi/internal/mapper"
	"github.com/hyperjump/meshi/internal/metrics"
	"github.com/hyperjump/meshi/internal/models"
	"github.com/hyperjump/meshi/internal/recommend"
	"github.com/hyperjump/meshi/internal/server"
	"github.com/hyperjump/meshi/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/meshi/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "recommend":
		runRecommend()
	case "import":
		runImport()
	case "version", "--version", "-v":
		fmt.Printf("meshi version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds what a recommendation needs, built from config.
type Components struct {
	Store  *catalog.Store
	Engine *recommend.Engine
	Mapper *mapper.Mapper
}

// initializeComponents loads the catalog and wires the engine and mapper.
func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := catalog.Open(ctx, cfg.Catalog.Path, catalog.Options{
		Format: catalog.Format(cfg.Catalog.Format),
		Sheet:  cfg.Catalog.Sheet,
		Table:  cfg.Catalog.Table,
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", zap.String("path", cfg.Catalog.Path), zap.Int("rows", store.Len()))
	metrics.CatalogRows.Set(float64(store.Len()))

	engine := recommend.NewEngine(store,
		recommend.WithLogger(logger),
		recommend.WithMaxCount(cfg.Recommend.MaxCount),
		recommend.WithMetrics(metrics.Recorder{}),
	)
	var mapOpts []mapper.Option
	if cfg.Recommend.SkipMalformed {
		mapOpts = append(mapOpts, mapper.WithSkipMalformed(logger))
	}
	return &Components{Store: store, Engine: engine, Mapper: mapper.New(mapOpts...)}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-request and per-query events)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode, zap.String("version", version))
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}

	srv := server.NewServer(components.Engine, components.Mapper, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func printRecommendUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: meshi recommend [flags]\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Nutrition ceilings are exclusive and given in the order
  calories, total fat, sugar, sodium, protein, saturated fat, carbohydrates.
Leave an entry empty to leave that nutrient unconstrained.

Examples:
  meshi recommend -nutrition 500,30,20,,,10 -category Vegan
  meshi recommend -ingredients "salt, olive oil" -count 10 -distance
  meshi recommend -server "" -catalog ./data/recipes.csv -nutrition 300
`)
}

// buildRecommendRequest turns recommend flags into an API request body.
func buildRecommendRequest(nutrition, ingredients, category string, count int, distance bool) (*models.RecommendRequest, error) {
	values, err := cli.ParseNutrition(nutrition)
	if err != nil {
		return nil, err
	}
	if _, err := catalog.ParseCategory(category); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative")
	}
	return &models.RecommendRequest{
		NutritionInput: values,
		Ingredients:    cli.ParseIngredients(ingredients),
		FoodType:       strings.TrimSpace(category),
		Params: &models.RecommendParams{
			NNeighbors:     count,
			ReturnDistance: distance,
		},
	}, nil
}

func runRecommend() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (for direct catalog mode)")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = read the catalog directly)")
	catalogPath := fs.String("catalog", "", "catalog file for direct mode (overrides config)")
	nutrition := fs.String("nutrition", "", "comma-separated nutrition ceilings")
	ingredients := fs.String("ingredients", "", "comma-separated required ingredients")
	category := fs.String("category", "", "food category: "+strings.Join(categoryNames(), ", "))
	count := fs.Int("count", 0, "number of recipes (0 = configured default)")
	distance := fs.Bool("distance", false, "include cosine distances")
	outputFormat := fs.String("output", "text", "output format: text, compact, or json")
	fs.Usage = func() { printRecommendUsage(fs) }
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	req, err := buildRecommendRequest(*nutrition, *ingredients, *category, *count, *distance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input: %v\n", err)
		os.Exit(1)
	}

	if *serverURL != "" {
		response, err := recommendViaHTTP(*serverURL, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteRecipes(os.Stdout, response.Output, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		if *catalogPath == "" {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = &config.Config{}
		config.ApplyDefaults(cfg)
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
		cfg.Catalog.Format = ""
	}
	logger, err := utils.NewLogger(cfg.Debug, zap.String("version", version))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	recipes, err := recommendDirect(components, req, cfg.Recommend.DefaultCount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Recommend failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteRecipes(os.Stdout, recipes, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func recommendDirect(c *Components, req *models.RecommendRequest, defaultCount int) ([]*models.Recipe, error) {
	query, err := req.ToQuery(defaultCount)
	if err != nil {
		return nil, err
	}
	res, err := c.Engine.Recommend(query)
	if err != nil {
		return nil, err
	}
	return c.Mapper.ToEntities(res)
}

func recommendViaHTTP(serverURL string, req *models.RecommendRequest) (*models.RecommendResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(strings.TrimRight(serverURL, "/")+"/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var response models.RecommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	from := fs.String("from", "", "source catalog (.csv, .xlsx, .db)")
	to := fs.String("to", "", "destination catalog (.db/.sqlite, .csv, .xlsx)")
	sheet := fs.String("sheet", "", "Excel sheet to read (default first sheet)")
	table := fs.String("table", catalog.DefaultTable, "SQLite table to read and write")
	_ = fs.Parse(os.Args[2:])

	if *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshi import -from <catalog> -to <catalog>")
		os.Exit(1)
	}
	ctx := context.Background()
	t, err := catalog.Load(ctx, *from, catalog.Options{Sheet: *sheet, Table: *table})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read catalog: %v\n", err)
		os.Exit(1)
	}
	if err := exportTable(ctx, t, *to, *table); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d recipes from %s into %s\n", t.Len(), *from, *to)
}

// exportTable writes t to path in the format given by its extension.
func exportTable(ctx context.Context, t *catalog.Table, path, table string) error {
	format, err := catalog.DetectFormat(path)
	if err != nil {
		return err
	}
	if format == catalog.FormatSQLite {
		dst, err := catalog.OpenSQLite(path, table)
		if err != nil {
			return err
		}
		defer dst.Close()
		return dst.Save(ctx, t)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if format == catalog.FormatXLSX {
		err = catalog.WriteXLSX(f, t)
	} else {
		err = catalog.WriteCSV(f, t)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func categoryNames() []string {
	var names []string
	for _, c := range catalog.Categories() {
		names = append(names, c.String())
	}
	return names
}

func printUsage() {
	fmt.Println(`meshi - Content-based diet and recipe recommender

Usage:
  meshi server [flags]      Start the HTTP server
  meshi recommend [flags]   Recommend recipes for nutrition ceilings and ingredients
  meshi import [flags]      Convert a catalog between CSV, Excel and SQLite
  meshi version             Show version
  meshi help                Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/meshi/config.yaml)
  --debug            Enable debug logging

Recommend Flags:
  --server string       Server URL (default: http://localhost:8080). Use --server "" to read the catalog directly.
  --config string       Config file path (for direct catalog mode)
  --catalog string      Catalog file for direct mode
  --nutrition string    Ceilings: calories,total fat,sugar,sodium,protein,saturated fat,carbohydrates
  --ingredients string  Comma-separated required ingredients
  --category string     Vegan, Non-Vegan, Vegan dessert, Non-Vegan dessert or Healthy
  --count int           Number of recipes (default from config, 5)
  --distance            Include cosine distances
  --output string       text, compact or json (default: text)

Import Flags:
  --from string    Source catalog
  --to string      Destination catalog
  --sheet string   Excel sheet to read
  --table string   SQLite table (default: recipes)

Examples:
  meshi server
  meshi recommend -nutrition 500,30,20 -category Vegan
  meshi import -from recipes.csv -to recipes.db`)
}
