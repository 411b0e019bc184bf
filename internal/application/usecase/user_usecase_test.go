package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

func TestUserChangeRole(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, entity.RoleUser)

	out, err := f.users.ChangeRole(f.ctx, user.ID, dto.ChangeRoleRequest{Role: "market_manager"})
	require.NoError(t, err)
	assert.Equal(t, "MARKET_MANAGER", out.Role)

	_, err = f.users.ChangeRole(f.ctx, user.ID, dto.ChangeRoleRequest{Role: "ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = f.users.ChangeRole(f.ctx, "00000000-0000-0000-0000-000000000009", dto.ChangeRoleRequest{Role: "USER"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserChangeRole_GestorConMercadoNoPierdeRol(t *testing.T) {
	f := newFixture(t)
	manager := f.addUser(t, entity.RoleMarketManager)
	f.addMarket(t, manager.ID)

	_, err := f.users.ChangeRole(f.ctx, manager.ID, dto.ChangeRoleRequest{Role: "USER"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.store.Users().GetByID(f.ctx, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMarketManager, got.Role)
}

func TestUserDelete(t *testing.T) {
	f := newFixture(t)
	manager := f.addUser(t, entity.RoleMarketManager)
	market := f.addMarket(t, manager.ID)

	assert.ErrorIs(t, f.users.Delete(f.ctx, manager.ID), domain.ErrUserOwnsMarket)

	empty := ""
	_, err := f.markets.Update(f.ctx, admin(), market.ID, dto.UpdateMarketRequest{ManagerID: &empty})
	require.NoError(t, err)
	assert.NoError(t, f.users.Delete(f.ctx, manager.ID))
	assert.ErrorIs(t, f.users.Delete(f.ctx, manager.ID), domain.ErrUserNotFound)
}

func TestUserList_PorRol(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, entity.RoleUser)
	f.addUser(t, entity.RoleUser)
	f.addUser(t, entity.RoleAdmin)

	out, err := f.users.List(f.ctx, dto.UserListRequest{Role: "USER"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	_, err = f.users.List(f.ctx, dto.UserListRequest{Role: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}
