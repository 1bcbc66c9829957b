// Command extract runs the invoice extraction pipeline over a directory of
// OCR text dumps and exports the structured results.
// Usage: INVOCR_INPUT_DIR=./receipts INVOCR_OUTPUT_FORMAT=csv go run ./cmd/extract
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"invocr/internal/config"
	"invocr/internal/domain"
	"invocr/internal/export"
	"invocr/internal/parser"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := findInputFiles(cfg.Input.Dir, cfg.Input.Extension)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.Input.Dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", cfg.Input.Extension, cfg.Input.Dir)
	}

	runID := uuid.New()
	p := parser.NewInvoiceParser()
	records := make([]domain.ExtractionRecord, 0, len(files))

	log.Printf("extract: run %s, %d documents from %s", runID, len(files), cfg.Input.Dir)

	for _, file := range files {
		rec := domain.ExtractionRecord{
			RunID:    runID,
			FileName: filepath.Base(file),
			ParsedAt: time.Now().UTC(),
		}

		raw, err := os.ReadFile(file)
		if err != nil {
			rec.Error = err.Error()
			log.Printf("extract: %s: %v", rec.FileName, err)
			records = append(records, rec)
			continue
		}

		data := p.Parse(string(raw))
		rec.Data = data
		rec.OverallConfidence = data.OverallConfidence()
		records = append(records, rec)

		if cfg.Log.Verbose {
			printRecord(&rec)
		}
	}

	kept := filterByConfidence(records, cfg.Output.MinConfidence)
	if err := writeResults(cfg, kept); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	logSummary(records, kept, cfg.Output.Path)
	return nil
}

func findInputFiles(dir, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), extension) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// filterByConfidence drops successfully parsed records below the threshold;
// failed records are always kept so the export shows what went wrong.
func filterByConfidence(records []domain.ExtractionRecord, minConfidence float64) []domain.ExtractionRecord {
	if minConfidence <= 0 {
		return records
	}

	kept := make([]domain.ExtractionRecord, 0, len(records))
	for _, rec := range records {
		if rec.Error != "" || rec.OverallConfidence >= minConfidence {
			kept = append(kept, rec)
		}
	}
	return kept
}

func writeResults(cfg *config.Config, records []domain.ExtractionRecord) error {
	format, err := cfg.Output.OutputFormat()
	if err != nil {
		return err
	}

	switch format {
	case domain.OutputFormatJSON:
		return writeJSON(cfg.Output.Path, records)
	case domain.OutputFormatCSV:
		return writeCSV(cfg.Output.Path, records)
	case domain.OutputFormatXLSX:
		return export.WriteXLSX(cfg.Output.Path, records)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeJSON(path string, records []domain.ExtractionRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeCSV(path string, records []domain.ExtractionRecord) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := out.Write(export.BOM); err != nil {
		return err
	}

	w := export.NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteRecords(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func printRecord(rec *domain.ExtractionRecord) {
	data := rec.Data
	fmt.Printf("%s (overall %.2f)\n", rec.FileName, rec.OverallConfidence)
	printField("document type", string(data.DocumentType), data.DocumentTypeConfidence)
	printStringField("invoice number", data.InvoiceNumber, data.InvoiceNumberConfidence)
	if data.TransactionDate != nil {
		printField("transaction date", data.TransactionDate.Format("2006-01-02"), data.TransactionDateConfidence)
	}
	printStringField("business name", data.BusinessName, data.BusinessNameConfidence)
	printStringField("business id", data.BusinessID, data.BusinessIDConfidence)
	printAmountField("amount before vat", data.AmountBeforeVAT, data.AmountBeforeVATConfidence)
	printAmountField("vat amount", data.VATAmount, data.VATAmountConfidence)
	printAmountField("amount after vat", data.AmountAfterVAT, data.AmountAfterVATConfidence)
	if data.ReferenceNumber != nil {
		printField(fmt.Sprintf("reference (%s)", data.ReferenceType), *data.ReferenceNumber, data.ReferenceNumberConfidence)
	}
	if data.ServiceDescription != nil {
		fmt.Printf("  %-20s %s\n", "service description", *data.ServiceDescription)
	}
}

func printField(name, value string, confidence float64) {
	fmt.Printf("  %-20s %s (%.2f)\n", name, value, confidence)
}

func printStringField(name string, value *string, confidence float64) {
	if value == nil {
		return
	}
	printField(name, *value, confidence)
}

func printAmountField(name string, value *float64, confidence float64) {
	if value == nil {
		return
	}
	printField(name, fmt.Sprintf("%.2f", *value), confidence)
}

func logSummary(all, kept []domain.ExtractionRecord, outPath string) {
	sum := 0.0
	parsed := 0
	failed := 0
	for _, rec := range all {
		if rec.Error != "" {
			failed++
			continue
		}
		sum += rec.OverallConfidence
		parsed++
	}

	avg := 0.0
	if parsed > 0 {
		avg = sum / float64(parsed)
	}
	log.Printf("extract: %d parsed, %d failed, average confidence %.2f, %d records written to %s",
		parsed, failed, avg, len(kept), outPath)
}
