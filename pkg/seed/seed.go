package seed

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"rentsearch_backend/internal/catalog"
	"rentsearch_backend/internal/model"
)

// SeedProperties inserts the listings of the JSON catalog file that are not
// in the properties table yet. Existing rows are left untouched.
func SeedProperties(db *gorm.DB, path string) (int, error) {
	records, err := catalog.ReadFile(path)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, r := range records {
		row, err := propertyRow(r)
		if err != nil {
			slog.Warn("skipping seed record", "id", r.ID, "error", err)
			continue
		}

		result := db.Where(model.Property{Title: row.Title, City: row.City, Area: row.Area}).FirstOrCreate(&row)
		if result.Error != nil {
			return created, fmt.Errorf("seed property %q: %w", row.Title, result.Error)
		}
		created += int(result.RowsAffected)
	}

	slog.Info("properties seeded", "file", path, "records", len(records), "created", created)
	return created, nil
}

func propertyRow(r catalog.Record) (model.Property, error) {
	// reject anything the catalog loader would skip later
	p, err := r.Property()
	if err != nil {
		return model.Property{}, err
	}

	amenities, err := json.Marshal(p.Amenities)
	if err != nil {
		return model.Property{}, err
	}

	row := model.Property{
		Title:       p.Title,
		Type:        string(p.Type),
		Furnishing:  string(p.Furnishing),
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		City:        p.City,
		Area:        p.Area,
		Latitude:    p.Location.Lat,
		Longitude:   p.Location.Lng,
		Amenities:   amenities,
		IsAvailable: p.Available,
		IsVerified:  p.Verified,
		ViewCount:   p.ViewCount,
		Rating:      p.Rating,
	}
	row.CreatedAt = p.CreatedAt
	return row, nil
}
