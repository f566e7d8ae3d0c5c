package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sakecatalog/backend/internal/model"
)

// PgProductRepository は ProductRepository の PostgreSQL 実装。
// 商品本体は data (JSONB) にワイヤ形式のまま保存し、hidden 列を正とする。
type PgProductRepository struct {
	pool *pgxpool.Pool
}

// NewPgProductRepository は PgProductRepository を生成する
func NewPgProductRepository(pool *pgxpool.Pool) *PgProductRepository {
	return &PgProductRepository{pool: pool}
}

// List は position 順に商品を返す
func (r *PgProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, data, hidden FROM products ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		var (
			id     int64
			data   []byte
			hidden bool
		)
		if err := rows.Scan(&id, &data, &hidden); err != nil {
			return nil, err
		}
		p, err := model.DecodeProduct(data)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %v", ErrUnavailable, id, err)
		}
		if p == nil {
			p = &model.Product{}
		}
		p.Hidden = hidden
		p.SourceKey = strconv.FormatInt(id, 10)
		products = append(products, p)
	}
	return products, rows.Err()
}

// SetHidden は hidden 列を更新する
func (r *PgProductRepository) SetHidden(ctx context.Context, key string, hidden bool) error {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET hidden=$1, updated_at=NOW() WHERE id=$2`,
		hidden, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll は全商品を1トランザクションで入れ替える
func (r *PgProductRepository) ReplaceAll(ctx context.Context, products []*model.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, p := range products {
		if p == nil {
			continue
		}
		rec, err := p.Record()
		if err != nil {
			return fmt.Errorf("encode product %d: %w", i, err)
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode product %d: %w", i, err)
		}
		batch.Queue(
			`INSERT INTO products (position, data, hidden) VALUES ($1, $2, $3)`,
			i, data, p.Hidden,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return err
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Ping は DB 接続の生存確認を行う
func (r *PgProductRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
