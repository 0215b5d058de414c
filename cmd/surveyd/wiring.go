package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	"github.com/mind-engage/mindengage-survey/internal/config"
	"github.com/mind-engage/mindengage-survey/internal/db"
	"github.com/mind-engage/mindengage-survey/internal/metrics"
	"github.com/mind-engage/mindengage-survey/internal/pages"
	"github.com/mind-engage/mindengage-survey/internal/storage"

	"go.uber.org/zap"
)

func loadPages(cfg config.Config) (*pages.Set, error) {
	var fsys fs.FS = pages.Sample()
	if cfg.PagesDir != "" {
		fsys = os.DirFS(cfg.PagesDir)
	}
	set, err := pages.Load(fsys)
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	return set, nil
}

// buildSink wires the CSV results file and, when a DB driver is set, the
// SQL mirror. The returned close func releases the DB handle.
func buildSink(ctx context.Context, cfg config.Config, mc *metrics.Collector) (storage.Sink, func(), error) {
	csvFile, err := storage.NewCSVFile(cfg.ResultsPath, storage.WithAdvisoryLock(cfg.ResultsLock))
	if err != nil {
		return nil, nil, fmt.Errorf("results file: %w", err)
	}
	instrument := func(name string, s storage.Sink) storage.Sink {
		if mc == nil {
			return s
		}
		return mc.Sink(name, s)
	}

	primary := instrument("csv", csvFile)
	if cfg.DBDriver == "" {
		return primary, func() {}, nil
	}

	var dbh *sql.DB
	dbh, err = db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db open failed: %w", err)
	}
	multi := &storage.Multi{
		Primary: primary,
		Mirrors: []storage.Sink{instrument("sql", storage.NewSQLMirror(dbh, cfg.SurveyID))},
		OnMirrorErr: func(err error) {
			logger.Warn("mirroring result row failed", zap.Error(err))
		},
	}
	return multi, func() { _ = dbh.Close() }, nil
}
