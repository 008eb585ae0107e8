package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shopspring/decimal"
)

// Rewrites an existing records file so every balance uses fixed two-decimal
// text. Files written by older builds carry raw float formatting such as
// "100.000000", which the fixed-point loader accepts but keeps drifting.
func main() {
	path := flag.String("file", "Bank_Record.csv", "records file to normalize")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("failed to open records file: %v", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	migrated, skipped := 0, 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				skipped++
				continue
			}
			log.Fatalf("failed to read records file: %v", err)
		}
		if len(row) < 10 {
			skipped++
			continue
		}
		balance, err := decimal.NewFromString(row[6])
		if err != nil {
			skipped++
			continue
		}
		row[6] = balance.StringFixed(2)
		rows = append(rows, row)
		migrated++
	}
	f.Close()

	tmp := *path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		log.Fatalf("failed to create temp file: %v", err)
	}
	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		out.Close()
		log.Fatalf("failed to write temp file: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("failed to close temp file: %v", err)
	}
	if err := os.Rename(tmp, *path); err != nil {
		log.Fatalf("failed to replace records file: %v", err)
	}

	fmt.Printf("Migration complete: %d records normalized, %d rows skipped\n", migrated, skipped)
}
