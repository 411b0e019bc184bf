package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Agromercados-api/internal/application/usecase"
	"github.com/jhoicas/Agromercados-api/internal/domain"
)

// readImage lee el campo multipart "image" con el límite de tamaño de imágenes.
func readImage(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("campo image requerido: %w", domain.ErrInvalidInput)
	}
	if fh.Size > usecase.MaxImageBytes {
		return nil, domain.ErrInvalidInput
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir imagen: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("leer imagen: %w", err)
	}
	return data, nil
}
