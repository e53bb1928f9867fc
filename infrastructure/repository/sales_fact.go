package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-ledger-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

const (
	salesTable   = "sales"
	salesColumns = "s.id, s.month, s.product_id, s.zone_id, s.quantity, s.created_at, s.updated_at"
)

// accumulateSuffix faz o upsert em um único comando atômico: dois escritores
// concorrentes na mesma chave somam as quantidades em vez de sobrescrever.
// xmax = 0 só é verdadeiro para a linha recém inserida.
const accumulateSuffix = `
	ON CONFLICT (month, product_id, zone_id) DO UPDATE SET
		quantity = sales.quantity + EXCLUDED.quantity,
		updated_at = NOW()
	RETURNING id, quantity, created_at, updated_at, (xmax = 0) AS inserted`

type SalesFactRepository interface {
	FindByKey(key domain.FactKey) (*domain.SalesFact, error)
	Accumulate(fact *domain.SalesFact) (bool, error)
	Scan(filter domain.FactFilter) ([]*domain.SalesFact, error)
}

type salesFactRepository struct {
	conn postgres.Queryer
}

func NewSalesFactRepository(conn postgres.Queryer) SalesFactRepository {
	return &salesFactRepository{
		conn: conn,
	}
}

func (r *salesFactRepository) FindByKey(key domain.FactKey) (*domain.SalesFact, error) {
	query, args, err := squirrel.
		Select(salesColumns).
		From(salesTable + " s").
		Where(squirrel.Eq{
			"s.month":      key.Month,
			"s.product_id": key.ProductID,
			"s.zone_id":    key.ZoneID,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	fact, err := scanFact(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, classifyError("buscar fato por chave", err)
	}

	return fact, nil
}

// Accumulate insere o fato ou soma sua quantidade à do fato já existente na mesma chave.
// O fato recebido é atualizado com o id e a quantidade acumulada; o bool indica inserção.
func (r *salesFactRepository) Accumulate(fact *domain.SalesFact) (bool, error) {
	query, args, err := squirrel.StatementBuilder.
		Insert(salesTable).
		Columns("month", "product_id", "zone_id", "quantity").
		Values(fact.Month, fact.ProductID, fact.ZoneID, fact.Quantity).
		Suffix(accumulateSuffix).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var inserted bool
	err = r.conn.QueryRow(query, args...).Scan(
		&fact.ID,
		&fact.Quantity,
		&fact.CreatedAt,
		&fact.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return false, classifyError("acumular fato de venda", err)
	}

	return inserted, nil
}

// Scan varre os fatos que atendem ao filtro, na ordem de inserção
func (r *salesFactRepository) Scan(filter domain.FactFilter) ([]*domain.SalesFact, error) {
	builder := squirrel.
		Select(salesColumns).
		From(salesTable + " s").
		OrderBy("s.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where := factPredicate(filter); len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, classifyError("varrer fatos de venda", err)
	}
	defer rows.Close()

	facts := make([]*domain.SalesFact, 0)
	for rows.Next() {
		fact, err := scanFact(rows)
		if err != nil {
			return nil, classifyError("escanear fato de venda", err)
		}
		facts = append(facts, fact)
	}

	if err = rows.Err(); err != nil {
		return nil, classifyError("iterar fatos de venda", err)
	}

	return facts, nil
}

func factPredicate(filter domain.FactFilter) squirrel.Eq {
	where := squirrel.Eq{}
	if filter.ProductID != nil {
		where["s.product_id"] = *filter.ProductID
	}
	if filter.ZoneID != nil {
		where["s.zone_id"] = *filter.ZoneID
	}
	return where
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFact(row rowScanner) (*domain.SalesFact, error) {
	fact := &domain.SalesFact{}

	err := row.Scan(
		&fact.ID,
		&fact.Month,
		&fact.ProductID,
		&fact.ZoneID,
		&fact.Quantity,
		&fact.CreatedAt,
		&fact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fact, nil
}
