package entity

import "time"

// Calificaciones admitidas.
const (
	MinRating = 1
	MaxRating = 5
)

// Comment reseña de un usuario sobre un producto. Se elimina en cascada con su Product.
type Comment struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int // entero 1..5
	Content   string
	CreatedAt time.Time
}

// ValidRating indica si r es una calificación admitida.
func ValidRating(r int) bool { return r >= MinRating && r <= MaxRating }
