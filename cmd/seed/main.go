// seed inserts development sample data for local testing.
// Idempotent: every insert is ON CONFLICT DO NOTHING, so rerunning is safe.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"water-abstraction-admin/internal/config"
	"water-abstraction-admin/internal/db"
)

const (
	devRegionID   = "0b5b0e54-7f14-45f4-90be-7b86a1b5b0e1"
	devLicenceID  = "6a9a33aa-0a85-4b0d-9e42-1f7fdfe1c001"
	devLicence2ID = "6a9a33aa-0a85-4b0d-9e42-1f7fdfe1c002"
	devPurposeID  = "9d4f33c1-2a70-47a5-8a53-30a2dd016001"
	devPurpose2ID = "9d4f33c1-2a70-47a5-8a53-30a2dd016002"
	devPointID    = "c2ab7e46-5d2e-4b9f-8d70-5ce29a5c1001"
	devPoint2ID   = "c2ab7e46-5d2e-4b9f-8d70-5ce29a5c1002"
	devPoint3ID   = "c2ab7e46-5d2e-4b9f-8d70-5ce29a5c1003"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, conn); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed: development data in place")
}

func seed(ctx context.Context, conn *sql.DB) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []struct {
		query string
		args  []any
	}{
		{
			`INSERT INTO regions (id, name, nald_region_id) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			[]any{devRegionID, "Anglian", 1},
		},
		{
			`INSERT INTO licences (id, licence_ref, holder_name, region_id, start_date, expired_date)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			[]any{devLicenceID, "01/123", "Acme Farms Ltd", devRegionID, "2020-04-01", nil},
		},
		{
			`INSERT INTO licences (id, licence_ref, holder_name, region_id, start_date, expired_date)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			[]any{devLicence2ID, "02/456", "Riverside Growers", devRegionID, "2018-01-15", "2030-12-31"},
		},
		{
			`INSERT INTO purposes (id, description) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{devPurposeID, "Spray Irrigation - Direct"},
		},
		{
			`INSERT INTO purposes (id, description) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{devPurpose2ID, "Vegetable Washing"},
		},
		{
			`INSERT INTO points (id, description, ngr_1, ngr_2, ngr_3, ngr_4)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			[]any{devPointID, "Borehole at Manor Farm", "TL 234 567", nil, nil, nil},
		},
		{
			`INSERT INTO points (id, description, ngr_1, ngr_2, ngr_3, ngr_4)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			[]any{devPoint2ID, "River intake reach", "TL 240 570", "TL 245 575", nil, nil},
		},
		{
			`INSERT INTO points (id, description, ngr_1, ngr_2, ngr_3, ngr_4)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			[]any{devPoint3ID, "Abstraction area", "TL 200 500", "TL 210 500", "TL 210 510", "TL 200 510"},
		},
		{
			`INSERT INTO licence_purposes (licence_id, purpose_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{devLicenceID, devPurposeID},
		},
		{
			`INSERT INTO licence_purposes (licence_id, purpose_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{devLicenceID, devPurpose2ID},
		},
		{
			`INSERT INTO licence_purposes (licence_id, purpose_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{devLicence2ID, devPurposeID},
		},
		{
			`INSERT INTO licence_points (licence_id, point_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{devLicenceID, devPointID},
		},
		{
			`INSERT INTO licence_points (licence_id, point_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{devLicenceID, devPoint2ID},
		},
		{
			`INSERT INTO licence_points (licence_id, point_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			[]any{devLicence2ID, devPoint3ID},
		},
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s.query, s.args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}
