package database

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/LordDeatHunter/Movienite/config"
	"github.com/LordDeatHunter/Movienite/models"
)

// ImportLegacyCSV upserts movies from the legacy movies.csv format into
// the database. The CSV era stored booleans as yes/no and tracked a
// single watched flag instead of the status column.
func ImportLegacyCSV(cfg *config.Config) error {
	if cfg.MoviesCSVImport == "" {
		return nil
	}

	file, err := os.Open(cfg.MoviesCSVImport)
	if err != nil {
		return fmt.Errorf("failed to open csv import file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read csv import file: %w", err)
	}
	if len(records) < 2 {
		return nil
	}

	columns := make(map[string]int)
	for i, name := range records[0] {
		columns[name] = i
	}
	if _, ok := columns["id"]; !ok {
		return fmt.Errorf("csv import file has no id column")
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	imported := 0
	for _, row := range records[1:] {
		id := field(row, "id")
		if id == "" {
			continue
		}

		status := models.StatusUpcoming
		if parseCSVBool(field(row, "watched")) {
			status = models.StatusWatched
		}

		var rating *float64
		if raw := field(row, "rating"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				rating = &v
			}
		}

		_, err := DB.Exec(
			`INSERT INTO movies (id, title, original_title, description, letterboxd_url, imdb_url, image_link, rating, votes, boobies, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 ON CONFLICT (id) DO UPDATE SET title          = EXCLUDED.title,
			                                original_title = EXCLUDED.original_title,
			                                description    = EXCLUDED.description,
			                                letterboxd_url = EXCLUDED.letterboxd_url,
			                                imdb_url       = EXCLUDED.imdb_url,
			                                image_link     = EXCLUDED.image_link,
			                                rating         = EXCLUDED.rating,
			                                votes          = EXCLUDED.votes,
			                                boobies        = EXCLUDED.boobies,
			                                status         = EXCLUDED.status`,
			id,
			field(row, "title"),
			field(row, "original_title"),
			field(row, "description"),
			field(row, "letterboxd_url"),
			field(row, "imdb_url"),
			field(row, "image_link"),
			rating,
			field(row, "votes"),
			parseCSVBool(field(row, "boobies")),
			status,
		)
		if err != nil {
			return fmt.Errorf("failed to import movie %s: %w", id, err)
		}
		imported++
	}

	slog.Info("Imported legacy CSV movies", "file", cfg.MoviesCSVImport, "count", imported)
	return nil
}

func parseCSVBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}
