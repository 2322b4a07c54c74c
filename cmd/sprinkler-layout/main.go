package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/banshee-data/sprinkler-layout/internal/config"
	"github.com/banshee-data/sprinkler-layout/internal/fsutil"
	"github.com/banshee-data/sprinkler-layout/internal/geometry"
	"github.com/banshee-data/sprinkler-layout/internal/geometry/sqlitestore"
	"github.com/banshee-data/sprinkler-layout/internal/monitoring"
	"github.com/banshee-data/sprinkler-layout/internal/render"
	"github.com/banshee-data/sprinkler-layout/internal/report"
	"github.com/banshee-data/sprinkler-layout/internal/scene"
	"github.com/banshee-data/sprinkler-layout/internal/version"
)

var (
	configPath  = flag.String("config", "", "Path to a JSON run configuration")
	source      = flag.String("source", "", "Geometry source: built-in name, .yaml/.json file or db:path#name")
	outputHTML  = flag.String("o", "", "Output HTML path (default "+config.DefaultOutputHTML+")")
	outputPlan  = flag.String("plan", "", "Also write a top-down plan image (.png, .svg, .pdf, .jpg)")
	outputDXF   = flag.String("dxf", "", "Also write a DXF drawing")
	importDB    = flag.String("import-db", "", "Save the selected dataset into this SQLite file")
	listen      = flag.String("serve", "", "Serve the rendered view on this address until interrupted")
	showReport  = flag.Bool("report", false, "Print a layout summary to stdout")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

const dbSourcePrefix = "db:"

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	fsys := fsutil.OSFileSystem{}

	cfg := config.EmptyRunConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadRunConfig(fsys, *configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := monitoring.Stage("load")
	src, err := loadSource(ctx, fsys, cfg.GetSource())
	if err != nil {
		log.Fatalf("failed to load geometry: %v", err)
	}
	done()

	s, err := buildScene(ctx, src, cfg, *importDB)
	if err != nil {
		log.Fatal(err)
	}

	done = monitoring.Stage("render")
	handle, err := render.Render(s, render.DefaultAxisLabels(), cfg.ViewOptions())
	if err != nil {
		log.Fatalf("failed to render scene: %v", err)
	}
	done()

	done = monitoring.Stage("export")
	if err := render.Export(handle, fsys, cfg.GetOutputHTML()); err != nil {
		log.Fatalf("failed to export chart: %v", err)
	}
	if p := cfg.GetOutputPlan(); p != "" {
		if err := render.ExportPlan(handle, fsys, p); err != nil {
			log.Fatalf("failed to export plan: %v", err)
		}
	}
	if p := cfg.GetOutputDXF(); p != "" {
		if err := render.ExportDXF(handle, fsys, p); err != nil {
			log.Fatalf("failed to export DXF: %v", err)
		}
	}
	done()

	if *showReport {
		if err := report.Write(os.Stdout, s.Summarize()); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
	}

	if *listen != "" {
		if err := serve(ctx, *listen, render.Handler(handle)); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}

// applyFlags overrides config values with any flags given on the command line.
func applyFlags(cfg *config.RunConfig) {
	if *source != "" {
		cfg.Source = source
	}
	if *outputHTML != "" {
		cfg.OutputHTML = outputHTML
	}
	if *outputPlan != "" {
		cfg.OutputPlan = outputPlan
	}
	if *outputDXF != "" {
		cfg.OutputDXF = outputDXF
	}
}

// loadSource resolves a -source value. Values starting with "db:" name a
// dataset in a SQLite file, values with a geometry file extension are read
// from disk and anything else is a built-in dataset name.
func loadSource(ctx context.Context, fsys fsutil.FileSystem, ref string) (geometry.Source, error) {
	switch {
	case strings.HasPrefix(ref, dbSourcePrefix):
		path, name, err := parseDBSource(ref)
		if err != nil {
			return nil, err
		}
		store, err := sqlitestore.Open(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load(ctx, name)
	case geometry.IsGeometryFile(ref):
		return geometry.LoadFile(fsys, ref)
	default:
		return geometry.Builtin(ref)
	}
}

// parseDBSource splits "db:path#name".
func parseDBSource(ref string) (path, name string, err error) {
	rest := strings.TrimPrefix(ref, dbSourcePrefix)
	i := strings.LastIndex(rest, "#")
	if i < 0 {
		return "", "", fmt.Errorf("database source %q must have the form db:path#name", ref)
	}
	path, name = rest[:i], rest[i+1:]
	if path == "" || name == "" {
		return "", "", fmt.Errorf("database source %q must have the form db:path#name", ref)
	}
	return path, name, nil
}

// buildScene validates src into a scene. When dbPath is set the validated
// dataset is then saved there; nothing is written for a source that fails to
// build.
func buildScene(ctx context.Context, src geometry.Source, cfg *config.RunConfig, dbPath string) (scene.Scene, error) {
	palette, err := cfg.GetPalette()
	if err != nil {
		return scene.Scene{}, fmt.Errorf("invalid palette: %w", err)
	}

	done := monitoring.Stage("build")
	s, err := scene.BuildScene(src, palette, cfg.SceneOptions())
	if err != nil {
		return scene.Scene{}, fmt.Errorf("failed to build scene: %w", err)
	}
	done()

	if dbPath != "" {
		if err := importDataset(ctx, dbPath, s.Source()); err != nil {
			return scene.Scene{}, fmt.Errorf("failed to import dataset: %w", err)
		}
	}
	return s, nil
}

func importDataset(ctx context.Context, path string, src geometry.Source) error {
	store, err := sqlitestore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Save(ctx, src); err != nil {
		return err
	}
	names, err := store.List(ctx)
	if err != nil {
		return err
	}
	log.Printf("saved %q to %s (datasets: %s)", src.Name(), path, strings.Join(names, ", "))
	return nil
}

// serve blocks until ctx is cancelled, then shuts the server down.
func serve(ctx context.Context, addr string, h http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving sprinkler layout on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	return nil
}
