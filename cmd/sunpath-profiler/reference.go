package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thurmanmarka/sunpath"
	"github.com/thurmanmarka/sunpath/internal/reference"
)

// refRow is one day of reference ephemeris.
type refRow struct {
	Date time.Time // local midnight
	Rise time.Time
	Set  time.Time
}

// readRefCSV parses reference rows.
//
// CSV format:
//
//	date,rise,set
//	2025-01-01,07:32,17:12
//	2025-01-02,07:32,17:13
//
// date is YYYY-MM-DD; rise and set are HH:MM or HH:MM:SS on the clock of
// loc. A leading header row is skipped. Malformed rows are logged and
// counted as skipped.
func readRefCSV(r io.Reader, loc *time.Location, logger *zap.Logger) (rows []refRow, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // variable, validated below

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("empty CSV file")
	}

	start := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		start = 1
	}

	for i := start; i < len(records); i++ {
		rec := records[i]
		line := i + 1
		if len(rec) < 3 {
			logger.Warn("Skipping row: expected date,rise,set", zap.Int("row", line), zap.Int("columns", len(rec)))
			skipped++
			continue
		}

		dateStr := strings.TrimSpace(rec[0])
		date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			logger.Warn("Skipping row: invalid date", zap.Int("row", line), zap.String("date", dateStr), zap.Error(err))
			skipped++
			continue
		}
		rise, err := parseLocalTime(date, strings.TrimSpace(rec[1]), loc)
		if err != nil {
			logger.Warn("Skipping row: invalid rise time", zap.Int("row", line), zap.String("rise", rec[1]), zap.Error(err))
			skipped++
			continue
		}
		set, err := parseLocalTime(date, strings.TrimSpace(rec[2]), loc)
		if err != nil {
			logger.Warn("Skipping row: invalid set time", zap.Int("row", line), zap.String("set", rec[2]), zap.Error(err))
			skipped++
			continue
		}

		rows = append(rows, refRow{Date: date, Rise: rise, Set: set})
	}
	return rows, skipped, nil
}

// generateRef builds reference rows for every date in [from, to] from the
// go-sunrise almanac algorithm. Dates without a rise or set are skipped.
func generateRef(coord sunpath.GeoCoordinate, from, to time.Time, logger *zap.Logger) (rows []refRow, skipped int) {
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		rise, set, ok := reference.RiseSet(coord, d)
		if !ok {
			logger.Debug("No reference rise/set", zap.String("date", d.Format("2006-01-02")))
			skipped++
			continue
		}
		rows = append(rows, refRow{Date: d, Rise: rise, Set: set})
	}
	return rows, skipped
}

func parseLocalTime(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}

	parsed, err := time.ParseInLocation(layout, hhmm, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, loc), nil
}
