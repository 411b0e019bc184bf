package entity

import "time"

// Market representa un mercado agropecuario. ManagerID vacío = sin gestor asignado.
// Un gestor (MARKET_MANAGER) administra como máximo un mercado.
type Market struct {
	ID           string
	Name         string
	Description  string
	Address      string
	Municipality string
	ManagerID    string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasManager indica si el mercado tiene gestor.
func (m *Market) HasManager() bool { return m.ManagerID != "" }

// ManagedBy indica si userID es el gestor del mercado.
func (m *Market) ManagedBy(userID string) bool {
	return userID != "" && m.ManagerID == userID
}
