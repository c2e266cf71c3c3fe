package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecommerce-analytics/internal/metrics"
	"ecommerce-analytics/pkg/rabbitmq"
)

// SeedScripts is the fixed load order. Later scripts reference rows inserted by
// earlier ones, so the order must not change.
var SeedScripts = []string{
	"2.usuarios.sql",
	"3.categorias.sql",
	"4.productos.sql",
	"5.ordenes.sql",
	"6.detalle_ordenes.sql",
	"7.direcciones_envio.sql",
	"8.carrito.sql",
	"9.metodos_pago.sql",
	"10.ordenes_metodospago.sql",
	"11.resenas_productos.sql",
	"12.historial_pagos.sql",
}

// ScriptError reports the script that aborted a run.
type ScriptError struct {
	File string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("error executing %s: %v", e.File, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// RunResult describes a committed run.
type RunResult struct {
	RunID    string
	Executed []string
	Skipped  []string
	Duration time.Duration
}

// EventPublisher announces committed data loads.
type EventPublisher interface {
	PublishDataLoaded(event rabbitmq.DataLoadedEvent) error
}

// ScriptRunner applies an ordered list of SQL scripts as one unit of work.
type ScriptRunner struct {
	db        *gorm.DB
	source    fs.FS
	files     []string
	publisher EventPublisher
}

// NewScriptRunner creates a runner that reads files from source in the given order.
func NewScriptRunner(db *gorm.DB, source fs.FS, files []string) *ScriptRunner {
	return &ScriptRunner{
		db:     db,
		source: source,
		files:  files,
	}
}

// WithPublisher sets the publisher notified after a successful commit.
func (r *ScriptRunner) WithPublisher(publisher EventPublisher) *ScriptRunner {
	r.publisher = publisher
	return r
}

// Run executes every script on a single connection inside a single transaction.
// Whitespace-only scripts are skipped. The transaction is committed once, after
// the last script; any read or execution failure rolls back everything executed
// in this run and is returned as a *ScriptError. The connection is released on
// every path.
func (r *ScriptRunner) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{RunID: uuid.New().String()}

	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			for _, file := range r.files {
				log.Printf("--> Executing script: %s", file)

				content, err := fs.ReadFile(r.source, file)
				if err != nil {
					return &ScriptError{File: file, Err: err}
				}
				script := string(content)
				if strings.TrimSpace(script) == "" {
					result.Skipped = append(result.Skipped, file)
					continue
				}
				if err := tx.Exec(script).Error; err != nil {
					return &ScriptError{File: file, Err: err}
				}
				result.Executed = append(result.Executed, file)
			}
			return nil
		})
	})
	result.Duration = time.Since(start)
	metrics.RecordSeedRun(err == nil)

	if err != nil {
		var scriptErr *ScriptError
		if errors.As(err, &scriptErr) {
			log.Printf("Error executing %s, transaction rolled back: %v", scriptErr.File, scriptErr.Err)
			return nil, scriptErr
		}
		log.Printf("Seed run %s failed, transaction rolled back: %v", result.RunID, err)
		return nil, fmt.Errorf("seed run failed: %w", err)
	}

	log.Printf("All %d scripts applied in %s (run %s, %d empty skipped)",
		len(r.files), result.Duration.Round(time.Millisecond), result.RunID, len(result.Skipped))
	r.notify(result)
	return result, nil
}

// notify publishes the data.loaded event. The data is already committed, so a
// publish failure is only logged.
func (r *ScriptRunner) notify(result *RunResult) {
	if r.publisher == nil {
		return
	}
	event := rabbitmq.DataLoadedEvent{
		RunID:       result.RunID,
		Files:       result.Executed,
		CompletedAt: time.Now().UTC(),
	}
	if err := r.publisher.PublishDataLoaded(event); err != nil {
		log.Printf("Warning: Failed to publish data loaded event for run %s: %v", result.RunID, err)
		return
	}
	log.Printf("Successfully published data loaded event for run %s", result.RunID)
}
