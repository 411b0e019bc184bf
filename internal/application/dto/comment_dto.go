package dto

import "time"

// CreateCommentRequest entrada para comentar un producto.
type CreateCommentRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// CommentResponse salida de un comentario.
type CommentResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
