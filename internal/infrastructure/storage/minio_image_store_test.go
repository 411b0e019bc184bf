package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Agromercados-api/pkg/config"
)

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000/agromercados",
		PublicBaseURL(config.StorageConfig{Endpoint: "minio:9000", Bucket: "agromercados"}))

	assert.Equal(t, "https://s3.example.com/img",
		PublicBaseURL(config.StorageConfig{Endpoint: "s3.example.com", Bucket: "img", UseSSL: true}))

	assert.Equal(t, "https://cdn.example.com/agro",
		PublicBaseURL(config.StorageConfig{Endpoint: "minio:9000", Bucket: "x", PublicURL: "https://cdn.example.com/agro/"}),
		"la URL pública configurada tiene prioridad y sin barra final")
}
