package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go-import-pipeline/internal/decoder"
	"go-import-pipeline/internal/model"
	"go-import-pipeline/internal/pipeline"
	"go-import-pipeline/internal/store"
)

// Non-interactive import runner: accepts the suggested mapping when it is
// complete and falls back to the entity's default key fields on duplicate
// conflicts.
func main() {
	filePath := flag.String("file", "", "CSV or XLSX file to import")
	entityKey := flag.String("entity", model.LedgerEntries.Key, "target entity key")
	mode := flag.String("mode", string(model.ModeAppend), "append or overwrite")
	dbPath := flag.String("db", "import.db", "sqlite database path")
	mappingsPath := flag.String("mappings", "mappings.db", "mapping store path")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}
	entity, ok := model.EntityByKey(*entityKey)
	if !ok {
		log.Fatalf("unknown entity %q", *entityKey)
	}

	db, err := store.InitDB(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	mappings, err := store.NewMappings(*mappingsPath)
	if err != nil {
		log.Fatalf("open mapping store: %v", err)
	}
	defer mappings.Close()

	sheet, err := decoder.Decode(*filePath, entity)
	if err != nil {
		log.Fatalf("decode %s: %v", *filePath, err)
	}

	coord := pipeline.NewCoordinator(entity, db, mappings, pipeline.DefaultCatalog())
	coord.Notify(func(ev model.Event) {
		if ev.Type == model.EventInsert {
			fmt.Printf("💾 Stored %d rows\n", ev.Count)
		}
	})

	ctx := context.Background()
	if err := coord.Begin(sheet, model.ImportMode(*mode)); err != nil {
		log.Fatalf("start import: %v", err)
	}

	if err := coord.ConfirmMapping(ctx, nil); err != nil {
		if incomplete, ok := err.(*model.IncompleteMappingError); ok {
			log.Fatalf("mapping incomplete: %d required field(s) could not be matched to source columns", incomplete.Missing)
		}
		for _, msg := range coord.RowErrors() {
			fmt.Fprintln(os.Stderr, msg)
		}
		log.Fatalf("import failed: %v", err)
	}

	if coord.PendingAction() == model.ActionConfirmKeyField {
		fmt.Printf("🔑 Duplicate keys detected, keeping default key fields %v\n", entity.DefaultKeyFields)
		if err := coord.ConfirmKeyFields(ctx, nil); err != nil {
			log.Fatalf("import failed: %v", err)
		}
	}

	if batch := coord.Batch(); batch != nil {
		db.SaveBatch(batch, string(coord.State()))
	}
}
