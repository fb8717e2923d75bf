package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2/middleware/filesystem"

	customfields "github.com/beta3zer0/go-customfields"
	"github.com/beta3zer0/go-customfields/components/references"
	"github.com/beta3zer0/go-customfields/internal/server"
	"github.com/beta3zer0/go-customfields/pkg/renderers/vanilla"
)

func main() {
	ctx := context.Background()

	// 1. Load config
	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config loaded (port: %d, catalog: %s)", cfg.Server.Port, cfg.Catalog.Path)

	// 2. Load the field catalog
	fields, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog ready (%d fields)", len(fields.Fields))

	// 3. Build the form renderer
	html, err := vanilla.New(rendererOptions(cfg)...)
	if err != nil {
		log.Fatalf("Failed to configure renderer: %v", err)
	}

	// 4. Record store, handler, fiber app
	store := server.NewRecordStore()
	handler := server.NewHandler(fields, store, html)
	app := server.NewApp(handler)

	// 5. Serve the embedded runtime assets
	app.Use("/assets", filesystem.New(filesystem.Config{
		Root: http.FS(customfields.RuntimeAssetsFS()),
	}))

	// 6. Reference typeahead for list-field entry
	refPath, err := references.RegisterRoutes(app, "/")
	if err != nil {
		log.Fatalf("Failed to register reference routes: %v", err)
	}
	log.Printf("Reference typeahead on %s", refPath)

	// 7. Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	log.Fatal(app.Listen(addr))
}

func loadCatalog(ctx context.Context, cfg *server.Config) (customfields.FieldSet, error) {
	if cfg.Catalog.Schema != "" {
		return customfields.LoadOpenAPIFieldSet(ctx, cfg.Catalog.Path, cfg.Catalog.Schema, customfields.WithHTTP())
	}
	return customfields.LoadFieldSet(ctx, cfg.Catalog.Path, customfields.WithHTTP())
}

func rendererOptions(cfg *server.Config) []vanilla.Option {
	options := []vanilla.Option{
		vanilla.WithSubmitLabel(cfg.Form.SubmitLabel),
	}
	if cfg.Form.StylesheetURL != "" {
		options = append(options, vanilla.WithStylesheet(cfg.Form.StylesheetURL))
	} else {
		options = append(options, vanilla.WithDefaultStyles())
	}
	if cfg.Form.ScriptURL != "" {
		options = append(options, vanilla.WithScriptURL(cfg.Form.ScriptURL))
	}
	return options
}
