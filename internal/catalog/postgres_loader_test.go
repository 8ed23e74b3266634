package catalog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var propertyColumns = []string{
	"id", "created_at", "updated_at", "deleted_at", "title", "slug", "type", "furnishing",
	"price", "bedrooms", "city", "area", "latitude", "longitude", "amenities",
	"is_available", "is_verified", "view_count", "rating",
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return gdb, mock
}

func TestPostgresLoader(t *testing.T) {
	gdb, mock := newMockDB(t)
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "properties" WHERE "properties"."deleted_at" IS NULL ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(propertyColumns).
			AddRow(1, created, created, nil, "Flat", "flat", "apartment", "furnished",
				22000.0, 2, "Kathmandu", "Baneshwor", 27.69, 85.34, []byte(`["wifi","cctv"]`),
				true, false, 12, 4.5).
			AddRow(2, created, created, nil, "Room", "room", "room", "unfurnished",
				7000.0, 1, "Kathmandu", "", 27.7, 85.3, []byte(`[]`),
				false, true, 0, nil))

	records, err := NewPostgresLoader(gdb).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}

	first, err := records[0].Property()
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if first.Amenities.Len() != 2 || !first.Available || first.Rating == nil || !first.CreatedAt.Equal(created) {
		t.Fatalf("first = %+v", first)
	}

	second, err := records[1].Property()
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if second.Available || !second.Verified || second.Rating != nil || !second.Amenities.IsEmpty() {
		t.Fatalf("second = %+v", second)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresLoaderQueryError(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "properties"`).WillReturnError(context.DeadlineExceeded)

	if _, err := NewPostgresLoader(gdb).Load(context.Background()); err == nil {
		t.Fatal("query error swallowed")
	}
}
