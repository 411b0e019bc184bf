package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Agromercados-api/internal/application/ports"
)

// ReportUseCase genera el reporte PDF del snapshot global.
type ReportUseCase struct {
	stats     *StatsUseCase
	generator ports.StatsReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(stats *StatsUseCase, generator ports.StatsReportGenerator) *ReportUseCase {
	return &ReportUseCase{stats: stats, generator: generator}
}

// GlobalReport devuelve el PDF con las estadísticas globales.
func (uc *ReportUseCase) GlobalReport(ctx context.Context) ([]byte, error) {
	snap, err := uc.stats.Global(ctx)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.Generate(snap, uc.stats.Now())
	if err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}
	return pdf, nil
}
