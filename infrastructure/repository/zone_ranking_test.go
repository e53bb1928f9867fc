package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

func TestZoneRankingRepository_ReplaceZoneRanking(t *testing.T) {
	deleteSQL := regexp.QuoteMeta("DELETE FROM zone_product_ranking WHERE zone_number = $1")
	insertSQL := regexp.QuoteMeta("INSERT INTO zone_product_ranking")

	entries := func() []*domain.ZoneRankingEntry {
		return []*domain.ZoneRankingEntry{
			{ZoneNumber: 3, ProductID: 2, ProductName: "p2", Quantity: 10, Position: 1},
			{ZoneNumber: 3, ProductID: 1, ProductName: "p1", Quantity: 8, Position: 2},
		}
	}

	t.Run("troca o ranking em uma transação", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewZoneRankingRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectExec(insertSQL).
			WithArgs(3, 2, "p2", 10, 1, sqlmock.AnyArg(), 3, 1, "p1", 8, 2, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		ranking := entries()
		err := repo.ReplaceZoneRanking(context.Background(), 3, ranking)

		require.NoError(t, err)
		assert.False(t, ranking[0].RefreshedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ranking vazio apenas limpa a zona", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewZoneRankingRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.ReplaceZoneRanking(context.Background(), 3, []*domain.ZoneRankingEntry{})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falha na inserção desfaz a remoção", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		repo := NewZoneRankingRepository(conn)

		mock.ExpectBegin()
		mock.ExpectExec(deleteSQL).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(insertSQL).WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.ReplaceZoneRanking(context.Background(), 3, entries())

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrStore))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestZoneRankingRepository_GetZoneRanking(t *testing.T) {
	conn, mock := newMockConnection(t)
	repo := NewZoneRankingRepository(conn)
	older := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	newer := older.Add(time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("FROM zone_product_ranking zr WHERE zr.zone_number = $1 ORDER BY zr.position ASC")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "zone_number", "product_id", "product_name", "total_quantity", "position", "refreshed_at"}).
			AddRow(1, 3, 2, "p2", 10, 1, older).
			AddRow(2, 3, 1, "p1", 8, 2, newer))

	response, err := repo.GetZoneRanking(3)

	require.NoError(t, err)
	require.Len(t, response.Ranking, 2)
	assert.Equal(t, "p2", response.Ranking[0].ProductName)
	assert.Equal(t, newer, response.LastRefresh)
}
