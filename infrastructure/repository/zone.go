package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

const (
	zonesTable   = "zones z"
	zonesColumns = "z.zone_number, z.zone_name, z.created_at"
)

type ZoneRepository interface {
	GetZone(zoneNumber int) (*domain.Zone, error)
	FindByName(name string) (*domain.Zone, error)
	InsertZone(zone *domain.Zone) error
	ListZones() ([]*domain.Zone, error)
}

type zoneRepository struct {
	conn postgres.Queryer
}

func NewZoneRepository(conn postgres.Queryer) ZoneRepository {
	return &zoneRepository{
		conn: conn,
	}
}

func (r *zoneRepository) GetZone(zoneNumber int) (*domain.Zone, error) {
	query, args, err := squirrel.
		Select(zonesColumns).
		From(zonesTable).
		Where(squirrel.Eq{"z.zone_number": zoneNumber}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	zone, err := scanZone(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classifyError("buscar zona", err)
	}

	return zone, nil
}

func (r *zoneRepository) FindByName(name string) (*domain.Zone, error) {
	query, args, err := squirrel.
		Select(zonesColumns).
		From(zonesTable).
		Where(squirrel.Eq{"z.zone_name": name}).
		OrderBy("z.zone_number ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	zone, err := scanZone(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classifyError("buscar zona por nome", err)
	}

	return zone, nil
}

func (r *zoneRepository) InsertZone(zone *domain.Zone) error {
	query, args, err := squirrel.
		Insert("zones").
		Columns("zone_number", "zone_name").
		Values(zone.Number, zone.Name).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&zone.CreatedAt); err != nil {
		return classifyError("inserir zona", err)
	}

	return nil
}

func (r *zoneRepository) ListZones() ([]*domain.Zone, error) {
	query, args, err := squirrel.
		Select(zonesColumns).
		From(zonesTable).
		OrderBy("z.zone_number ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, classifyError("listar zonas", err)
	}
	defer rows.Close()

	zones := make([]*domain.Zone, 0)
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, classifyError("escanear zona", err)
		}
		zones = append(zones, zone)
	}

	if err = rows.Err(); err != nil {
		return nil, classifyError("iterar zonas", err)
	}

	return zones, nil
}

func scanZone(row rowScanner) (*domain.Zone, error) {
	zone := &domain.Zone{}

	err := row.Scan(
		&zone.Number,
		&zone.Name,
		&zone.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return zone, nil
}
