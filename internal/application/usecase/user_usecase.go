package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Agromercados-api/internal/application/auth"
	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
	"github.com/jhoicas/Agromercados-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo ADMIN).
type UserUseCase struct {
	repo repository.UserRepository
	tx   repository.TxRunner
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, tx repository.TxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx, now: time.Now}
}

// List lista usuarios, opcionalmente por rol, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context, in dto.UserListRequest) (*dto.UserListResponse, error) {
	in.DefaultPage()
	var role entity.Role
	if in.Role != "" {
		r, ok := entity.ParseRole(in.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		role = r
	}
	list, err := uc.repo.List(ctx, repository.UserFilter{Role: role, Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ChangeRole cambia el rol de un usuario. Un MARKET_MANAGER que administra un mercado
// no puede perder el rol mientras el mercado siga asignado (ErrConflict).
func (uc *UserUseCase) ChangeRole(ctx context.Context, id string, in dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	var updated *entity.User
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		user, err := repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		if user.Role == entity.RoleMarketManager && role != entity.RoleMarketManager {
			owned, err := repos.Markets.GetByManager(ctx, user.ID)
			if err != nil {
				return err
			}
			if owned != nil {
				return domain.ErrConflict
			}
		}
		user.Role = role
		user.UpdatedAt = uc.now()
		if err := repos.Users.UpdateRole(ctx, user.ID, role, user.UpdatedAt); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(updated), nil
}

// Delete elimina un usuario. Si administra un mercado devuelve ErrUserOwnsMarket.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		user, err := repos.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrUserNotFound
		}
		owned, err := repos.Markets.GetByManager(ctx, id)
		if err != nil {
			return err
		}
		if owned != nil {
			return domain.ErrUserOwnsMarket
		}
		return repos.Users.Delete(ctx, id)
	})
}
