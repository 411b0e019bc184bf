package ports

import (
	"context"
	"io"
)

// ImageStore puerto de salida para guardar imágenes de mercados y productos.
// Put devuelve la URL pública del objeto guardado.
type ImageStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
