package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentsearch_backend/internal/model"
)

// PostgresLoader reads every non-deleted row of the properties table.
type PostgresLoader struct {
	db *gorm.DB
}

func NewPostgresLoader(db *gorm.DB) *PostgresLoader {
	return &PostgresLoader{db: db}
}

func (l *PostgresLoader) Source() string { return "postgres" }

func (l *PostgresLoader) Load(ctx context.Context) ([]Record, error) {
	var rows []model.Property
	if err := l.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}

	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = recordFromModel(row)
	}
	return records, nil
}
