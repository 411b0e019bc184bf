package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/Agromercados-api/internal/application/ports"
	"github.com/jhoicas/Agromercados-api/internal/domain"
)

// MaxImageBytes tamaño máximo aceptado para imágenes de mercados y productos.
const MaxImageBytes = 5 << 20

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// storeImage detecta el tipo real por contenido (no por la extensión declarada) y sube la imagen.
// La clave incluye el instante para que cada subida tenga una URL nueva.
func storeImage(ctx context.Context, store ports.ImageStore, prefix, id string, data []byte, now time.Time) (string, error) {
	if store == nil {
		return "", domain.ErrStorageDisabled
	}
	if len(data) == 0 || len(data) > MaxImageBytes {
		return "", domain.ErrInvalidInput
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return "", domain.ErrUnsupportedImage
	}
	key := fmt.Sprintf("%s/%s-%d%s", prefix, id, now.UnixMilli(), mt.Extension())
	return store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mt.String())
}
