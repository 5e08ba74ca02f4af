// postcode-import loads a GeoNames-style postcode CSV into the SQLite
// database the daylight service reads. Expected columns:
// postcode,latitude,longitude,place_name.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tmcfarlane/floodpilot/internal/geocode"
)

func main() {
	csvFile := flag.String("csv", "", "Path to the postcode CSV file")
	dbFile := flag.String("db", "postcodes.db", "Path to the SQLite database to create or update")
	flag.Parse()

	if *csvFile == "" {
		fmt.Fprintln(os.Stderr, "the -csv flag is required")
		os.Exit(1)
	}

	f, err := os.Open(*csvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	db, err := geocode.Open(*dbFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create schema: %v\n", err)
		os.Exit(1)
	}

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var imported, skipped int
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read error at line %d: %v\n", line, err)
			os.Exit(1)
		}
		if len(record) < 3 {
			skipped++
			continue
		}

		lat, latErr := strconv.ParseFloat(record[1], 64)
		lon, lonErr := strconv.ParseFloat(record[2], 64)
		if latErr != nil || lonErr != nil {
			skipped++
			continue
		}

		loc := geocode.Location{Latitude: lat, Longitude: lon}
		if len(record) > 3 {
			loc.PlaceName = record[3]
		}
		if err := db.Insert(record[0], loc); err != nil {
			fmt.Fprintf(os.Stderr, "insert failed at line %d: %v\n", line, err)
			os.Exit(1)
		}
		imported++
	}

	fmt.Printf("imported %d postcodes into %s (%d rows skipped)\n", imported, *dbFile, skipped)
}
