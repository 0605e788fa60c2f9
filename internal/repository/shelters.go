package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

const upsertShelterSQL = `
	INSERT INTO shelters (id, name, type, address, phone, latitude, longitude, capacity, elevation, structure_type, features, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		type = excluded.type,
		address = excluded.address,
		phone = excluded.phone,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		capacity = excluded.capacity,
		elevation = excluded.elevation,
		structure_type = excluded.structure_type,
		features = excluded.features,
		updated_at = excluded.updated_at
`

const selectShelterColumns = `id, name, type, address, phone, latitude, longitude, capacity, elevation, structure_type, features`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, ex execer, sh *models.Shelter) error {
	features, err := json.Marshal(nonNil(sh.Features))
	if err != nil {
		return fmt.Errorf("error encoding features for %s: %w", sh.ID, err)
	}
	var elevation sql.NullFloat64
	if sh.Elevation != nil {
		elevation = sql.NullFloat64{Float64: *sh.Elevation, Valid: true}
	}

	_, err = ex.ExecContext(ctx, upsertShelterSQL,
		sh.ID, sh.Name, sh.Type, sh.Address, sh.Phone,
		sh.Latitude, sh.Longitude, sh.Capacity, elevation,
		string(sh.StructureType), string(features), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error upserting shelter %s: %w", sh.ID, err)
	}
	return nil
}

// UpsertShelters writes all shelters in one transaction.
func (s *SQLiteDB) UpsertShelters(ctx context.Context, shelters []models.Shelter) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range shelters {
		if err := upsert(ctx, tx, &shelters[i]); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing shelters: %w", err)
	}
	return len(shelters), nil
}

// ListShelters returns every stored shelter ordered by id.
func (s *SQLiteDB) ListShelters(ctx context.Context) ([]models.Shelter, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectShelterColumns+` FROM shelters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing shelters: %w", err)
	}
	defer rows.Close()

	var shelters []models.Shelter
	for rows.Next() {
		sh, err := scanShelter(rows)
		if err != nil {
			return nil, err
		}
		shelters = append(shelters, *sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shelters: %w", err)
	}
	return shelters, nil
}

func (s *SQLiteDB) CountShelters(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shelters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting shelters: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShelter(sc scanner) (*models.Shelter, error) {
	var (
		sh            models.Shelter
		address       sql.NullString
		phone         sql.NullString
		elevation     sql.NullFloat64
		structureType sql.NullString
		features      string
	)
	err := sc.Scan(&sh.ID, &sh.Name, &sh.Type, &address, &phone,
		&sh.Latitude, &sh.Longitude, &sh.Capacity, &elevation, &structureType, &features)
	if err != nil {
		return nil, fmt.Errorf("error scanning shelter: %w", err)
	}

	sh.Address = address.String
	sh.Phone = phone.String
	sh.StructureType = models.StructureType(structureType.String)
	if elevation.Valid {
		v := elevation.Float64
		sh.Elevation = &v
	}
	if err := json.Unmarshal([]byte(features), &sh.Features); err != nil {
		return nil, fmt.Errorf("error decoding features for %s: %w", sh.ID, err)
	}
	return &sh, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
