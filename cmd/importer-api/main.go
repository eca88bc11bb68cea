package main

import (
	"flag"
	"log"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-import-pipeline/docs"
	"go-import-pipeline/internal/api"
	"go-import-pipeline/internal/api/handler"
	"go-import-pipeline/internal/pipeline"
	"go-import-pipeline/internal/store"
	"go-import-pipeline/pkg/router"
)

// @title Tabular Import API
// @version 1.0
// @description Maps spreadsheet rows onto target entities and commits them in batches.
// @BasePath /api/v1
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "import.db", "sqlite database path")
	mappingsPath := flag.String("mappings", "mappings.db", "mapping store path")
	flag.Parse()

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

	r := router.New()
	api.RegisterRoutes(r, handler.New(db, mappings, pipeline.DefaultCatalog()))
	r.GET("/swagger/*", httpSwagger.WrapHandler.ServeHTTP)

	log.Fatal(r.Start(*addr))
}
