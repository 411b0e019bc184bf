package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
)

var _ repository.MarketScheduleRepository = (*MarketScheduleRepo)(nil)

// MarketScheduleRepo horarios de mercados sobre PostgreSQL.
type MarketScheduleRepo struct {
	q Querier
}

// NewMarketScheduleRepository construye el adaptador de horarios.
func NewMarketScheduleRepository(q Querier) *MarketScheduleRepo {
	return &MarketScheduleRepo{q: q}
}

// ListByMarket devuelve los horarios ordenados por día y hora de apertura.
func (r *MarketScheduleRepo) ListByMarket(ctx context.Context, marketID string) ([]*entity.MarketSchedule, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id::text, market_id::text, day_of_week, open_time, close_time
		FROM market_schedules WHERE market_id = $1
		ORDER BY day_of_week, open_time`, marketID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()
	var list []*entity.MarketSchedule
	for rows.Next() {
		var s entity.MarketSchedule
		var day int16
		if err := rows.Scan(&s.ID, &s.MarketID, &day, &s.OpenTime, &s.CloseTime); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		s.DayOfWeek = int(day)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Replace borra los horarios actuales e inserta los nuevos en una sola transacción
// (savepoint si el Querier ya es una tx).
func (r *MarketScheduleRepo) Replace(ctx context.Context, marketID string, schedules []*entity.MarketSchedule) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM market_schedules WHERE market_id = $1`, marketID); err != nil {
		return fmt.Errorf("delete schedules: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range schedules {
		batch.Queue(`
			INSERT INTO market_schedules (id, market_id, day_of_week, open_time, close_time)
			VALUES ($1, $2, $3, $4, $5)`,
			s.ID, marketID, s.DayOfWeek, s.OpenTime, s.CloseTime)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert schedules: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
