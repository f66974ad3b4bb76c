package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/SD-CODE-OEB/stationery-Saas/internal/importer"
)

func main() {
	var (
		inPath  string
		outPath string
	)
	flag.StringVar(&inPath, "in", "", "Path to product CSV export")
	flag.StringVar(&outPath, "out", "catalog.json", "Path to write the catalog JSON")
	flag.Parse()

	if inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(inPath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	start := time.Now()
	products, err := importer.NewCSVImporter(f).Run()
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Fatalf("encode catalog: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("write catalog: %v", err)
	}

	fmt.Printf("Wrote %d products to %s in %s\n", len(products), outPath, time.Since(start).Truncate(time.Millisecond))
}
