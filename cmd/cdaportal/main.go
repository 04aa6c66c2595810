package main

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SimoKiihamaki/cdaportal/internal/catalog"
	"github.com/SimoKiihamaki/cdaportal/internal/config"
	"github.com/SimoKiihamaki/cdaportal/internal/nav"
	"github.com/SimoKiihamaki/cdaportal/internal/tui"
)

func main() {
	loaded := config.LoadWithWarnings()
	for _, w := range loaded.Warnings {
		log.Printf("config: %s", w)
	}
	cfg := loaded.Config
	if result := cfg.ValidateInterField(); !result.Valid {
		for _, issue := range result.Errors() {
			log.Printf("config error: %s: %s", issue.Field, issue.Message)
		}
		log.Fatal("invalid configuration")
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Printf("Warning: %v; using the built-in catalog", err)
		cat = catalog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan tui.CatalogReload, 1)
	if cfg.CatalogPath != "" && cfg.WatchCatalogEnabled() {
		go func() {
			err := catalog.Watch(ctx, cfg.CatalogPath, catalog.DefaultWatchDebounce, func(c *catalog.Catalog, err error) {
				select {
				case reloads <- tui.CatalogReload{Catalog: c, Err: err}:
				case <-ctx.Done():
				}
			})
			if err != nil {
				log.Printf("catalog watch disabled: %v", err)
			}
		}()
	}

	m := tui.New(tui.Options{
		Config:     cfg,
		Catalog:    cat,
		Keyboard:   nav.NewKeyboard(),
		Reloads:    reloads,
		SessionLog: true,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	m.Shutdown()
	if err != nil {
		cancel()
		log.Fatal(err)
	}
}
