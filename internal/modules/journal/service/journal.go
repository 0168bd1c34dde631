package service

import (
	"context"

	"github.com/jamsturg/bitget-trading-bot/internal/models"
	"github.com/jamsturg/bitget-trading-bot/pkg/db"
	"github.com/jamsturg/bitget-trading-bot/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// Journal — insert-only журнал исполнений в Postgres.
// Бот его никогда не читает: после рестарта состояние не восстанавливается,
// журнал нужен людям для сверки экспозиции (особенно после partial bracket).
type Journal struct {
	tx *db.PgTxManager
}

func NewJournal(tx *db.PgTxManager) *Journal {
	return &Journal{tx: tx}
}

func (j *Journal) EnsureSchema(ctx context.Context) error {
	err := j.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, `
			CREATE TABLE IF NOT EXISTS bracket_executions (
				id               BIGSERIAL PRIMARY KEY,
				recorded_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
				symbol           TEXT NOT NULL,
				status           TEXT NOT NULL,
				error            TEXT,
				entry_order      JSONB,
				partial_tp_order JSONB,
				final_tp_order   JSONB,
				stop_loss_order  JSONB
			)`)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctxTx, `
			CREATE TABLE IF NOT EXISTS stop_moves (
				id            BIGSERIAL PRIMARY KEY,
				recorded_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
				symbol        TEXT NOT NULL,
				trigger_price DOUBLE PRECISION NOT NULL,
				size          TEXT NOT NULL
			)`)
		return err
	})
	return errors.Wrap(err, "journal schema")
}

// RecordExecution пишет итог брекета. Ошибка журнала не валит сделку —
// только лог: торговый поток важнее аудита.
func (j *Journal) RecordExecution(ctx context.Context, res models.ExecutionResult) {
	var errText *string
	if res.Err != nil {
		s := res.Err.Error()
		errText = &s
	}

	err := j.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, `
			INSERT INTO bracket_executions
				(symbol, status, error, entry_order, partial_tp_order, final_tp_order, stop_loss_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			res.Symbol, string(res.Status), errText,
			nullableJSON(res.EntryOrder), nullableJSON(res.PartialTPOrder),
			nullableJSON(res.FinalTPOrder), nullableJSON(res.StopLossOrder),
		)
		return err
	})
	if err != nil {
		logger.Error("journal execution %s: %v", res.Symbol, err)
	}
}

func (j *Journal) RecordStopMove(ctx context.Context, symbol string, triggerPrice float64, size string) {
	err := j.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, `
			INSERT INTO stop_moves (symbol, trigger_price, size)
			VALUES ($1, $2, $3)`,
			symbol, triggerPrice, size,
		)
		return err
	})
	if err != nil {
		logger.Error("journal stop move %s: %v", symbol, err)
	}
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

// Noop — журнал выключен (db_dsn пуст).
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) RecordExecution(context.Context, models.ExecutionResult) {}
func (*Noop) RecordStopMove(context.Context, string, float64, string) {}
