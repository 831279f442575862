package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Querier общий набор методов пула и транзакции.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type txKey struct{}

type txState struct {
	tx          pgx.Tx
	afterCommit []func()
}

// TxManager открывает транзакцию и кладет ее в контекст; репозитории берут ее через conn.
type TxManager struct {
	db *pgxpool.Pool
}

func NewTxManager(db *pgxpool.Pool) *TxManager {
	return &TxManager{db: db}
}

// WithinTx выполняет fn в одной транзакции. Вложенный вызов присоединяется к внешней.
// Хуки AfterCommit запускаются только после успешного коммита.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "repository.TxManager.WithinTx"

	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	state := &txState{tx: tx}

	if err := fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	for _, hook := range state.afterCommit {
		hook()
	}

	return nil
}

// AfterCommit откладывает hook до коммита текущей транзакции. Вне транзакции hook
// выполняется сразу.
func AfterCommit(ctx context.Context, hook func()) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		state.afterCommit = append(state.afterCommit, hook)
		return
	}
	hook()
}

func conn(ctx context.Context, db *pgxpool.Pool) Querier {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state.tx
	}
	return db
}
