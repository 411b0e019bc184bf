package repository

import "context"

// TxRepos repositorios ligados a una misma transacción.
type TxRepos struct {
	Users   UserRepository
	Markets MarketRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
