package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

const (
	zoneRankingTable = "zone_product_ranking zr"
)

type ZoneRankingRepository interface {
	GetZoneRanking(zoneNumber int) (*domain.ZoneRankingResponse, error)
	ReplaceZoneRanking(ctx context.Context, zoneNumber int, entries []*domain.ZoneRankingEntry) error
}

type zoneRankingRepository struct {
	conn postgres.Conn
}

func NewZoneRankingRepository(conn postgres.Conn) ZoneRankingRepository {
	return &zoneRankingRepository{
		conn: conn,
	}
}

func (r *zoneRankingRepository) GetZoneRanking(zoneNumber int) (*domain.ZoneRankingResponse, error) {
	query, args, err := squirrel.
		Select(
			"zr.id",
			"zr.zone_number",
			"zr.product_id",
			"zr.product_name",
			"zr.total_quantity",
			"zr.position",
			"zr.refreshed_at",
		).
		From(zoneRankingTable).
		Where(squirrel.Eq{"zr.zone_number": zoneNumber}).
		OrderBy("zr.position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, classifyError("buscar ranking da zona", err)
	}
	defer rows.Close()

	response := &domain.ZoneRankingResponse{
		ZoneNumber: zoneNumber,
		Ranking:    make([]domain.ZoneRankingEntry, 0),
	}

	for rows.Next() {
		entry := domain.ZoneRankingEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.ZoneNumber,
			&entry.ProductID,
			&entry.ProductName,
			&entry.Quantity,
			&entry.Position,
			&entry.RefreshedAt,
		)
		if err != nil {
			return nil, classifyError("escanear item do ranking", err)
		}

		response.Ranking = append(response.Ranking, entry)

		// Manter o refresh mais recente
		if entry.RefreshedAt.After(response.LastRefresh) {
			response.LastRefresh = entry.RefreshedAt
		}
	}

	if err = rows.Err(); err != nil {
		return nil, classifyError("iterar ranking da zona", err)
	}

	return response, nil
}

// ReplaceZoneRanking troca todo o ranking da zona dentro de uma transação
func (r *zoneRankingRepository) ReplaceZoneRanking(ctx context.Context, zoneNumber int, entries []*domain.ZoneRankingEntry) error {
	deleteSQL, deleteArgs, err := squirrel.
		Delete("zone_product_ranking").
		Where(squirrel.Eq{"zone_number": zoneNumber}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	refreshedAt := time.Now()
	insert := squirrel.StatementBuilder.
		Insert("zone_product_ranking").
		Columns(
			"zone_number",
			"product_id",
			"product_name",
			"total_quantity",
			"position",
			"refreshed_at",
		).
		PlaceholderFormat(squirrel.Dollar)

	for _, entry := range entries {
		entry.RefreshedAt = refreshedAt
		insert = insert.Values(
			zoneNumber,
			entry.ProductID,
			entry.ProductName,
			entry.Quantity,
			entry.Position,
			entry.RefreshedAt,
		)
	}

	return r.conn.RunInTransaction(ctx, func(tx postgres.Queryer) error {
		if _, err := tx.Exec(deleteSQL, deleteArgs...); err != nil {
			return classifyError("remover ranking anterior", err)
		}

		if len(entries) == 0 {
			return nil
		}

		insertSQL, insertArgs, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de inserção: %w", err)
		}

		if _, err := tx.Exec(insertSQL, insertArgs...); err != nil {
			return classifyError("inserir ranking", err)
		}

		return nil
	})
}
