package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/stats"
)

// SnapshotCache caché del snapshot de estadísticas. Get devuelve (nil, nil) si no hay entrada.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*stats.Snapshot, error)
	Set(ctx context.Context, key string, snap stats.Snapshot, ttl time.Duration) error
}

// StatsReportGenerator renderiza el snapshot como documento descargable (PDF).
type StatsReportGenerator interface {
	Generate(snap stats.Snapshot, generatedAt time.Time) ([]byte, error)
}

// CatalogFeedBuilder serializa el catálogo público de un mercado.
// El etag identifica el contenido canónico del documento.
type CatalogFeedBuilder interface {
	Build(market *entity.Market, schedules []*entity.MarketSchedule, products []*entity.Product) (body []byte, etag string, err error)
}
