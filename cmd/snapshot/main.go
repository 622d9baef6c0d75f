// Command snapshot performs a one-shot load and prints the per-game
// yesterday summary as JSON. Useful for cron-driven reports and for
// checking spreadsheet health without starting the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/webboardlab/voc-insight/internal/aggregate"
	"github.com/webboardlab/voc-insight/internal/classifier"
	"github.com/webboardlab/voc-insight/internal/config"
	"github.com/webboardlab/voc-insight/internal/domain"
	"github.com/webboardlab/voc-insight/internal/loader"
	"github.com/webboardlab/voc-insight/internal/logger"
	"github.com/webboardlab/voc-insight/internal/sheets"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: "warn"})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	client, err := sheets.NewGoogleClient(ctx, sheets.Config{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		CredentialsFile: cfg.Sheets.CredentialsFile,
		ReadsPerSecond:  cfg.Sheets.ReadsPerSecond,
		ReadBurst:       cfg.Sheets.ReadBurst,
	}, log)
	if err != nil {
		return err
	}

	cls := classifier.New(log, classifier.Config{BodyCap: cfg.Service.BodyCap})
	table, err := loader.New(client, cls, log, nil).Load(ctx)
	if err != nil {
		return err
	}

	byGame := aggregate.YesterdaySummary(table.Records, time.Now().UTC(), aggregate.DefaultSummaryOptions)
	summaries := make([]domain.IssueSummary, 0, len(domain.AllGames))
	for _, g := range domain.AllGames {
		summaries = append(summaries, byGame[g])
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
