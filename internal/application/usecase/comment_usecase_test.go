package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/domain/entity"
)

func TestCommentCreate_RangoDeCalificacion(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, f.addMarket(t, "").ID, true)
	user := f.addUser(t, entity.RoleUser)

	for _, r := range []int{0, 6, -1} {
		_, err := f.comments.Create(f.ctx, as(user), product.ID, dto.CreateCommentRequest{Rating: r})
		assert.ErrorIs(t, err, domain.ErrInvalidRating, "rating %d", r)
	}
	for _, r := range []int{1, 5} {
		_, err := f.comments.Create(f.ctx, as(user), product.ID, dto.CreateCommentRequest{Rating: r})
		assert.NoError(t, err, "rating %d", r)
	}
}

func TestCommentCreate_LongitudEnCaracteres(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, f.addMarket(t, "").ID, true)
	user := f.addUser(t, entity.RoleUser)

	// 1000 caracteres multibyte siguen siendo válidos
	out, err := f.comments.Create(f.ctx, as(user), product.ID, dto.CreateCommentRequest{Rating: 4, Content: strings.Repeat("ñ", 1000)})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.UserID)

	_, err = f.comments.Create(f.ctx, as(user), product.ID, dto.CreateCommentRequest{Rating: 4, Content: strings.Repeat("a", 1001)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommentCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.comments.Create(f.ctx, as(f.addUser(t, entity.RoleUser)), "00000000-0000-0000-0000-000000000009", dto.CreateCommentRequest{Rating: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.comments.ListByProduct(f.ctx, "00000000-0000-0000-0000-000000000009")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommentDelete_AutorOAdmin(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, f.addMarket(t, "").ID, true)
	author := f.addUser(t, entity.RoleUser)
	stranger := f.addUser(t, entity.RoleUser)

	c1, err := f.comments.Create(f.ctx, as(author), product.ID, dto.CreateCommentRequest{Rating: 2, Content: "regular"})
	require.NoError(t, err)
	c2, err := f.comments.Create(f.ctx, as(author), product.ID, dto.CreateCommentRequest{Rating: 5})
	require.NoError(t, err)

	assert.ErrorIs(t, f.comments.Delete(f.ctx, as(stranger), c1.ID), domain.ErrForbidden)
	assert.NoError(t, f.comments.Delete(f.ctx, as(author), c1.ID))
	assert.NoError(t, f.comments.Delete(f.ctx, admin(), c2.ID))
	assert.ErrorIs(t, f.comments.Delete(f.ctx, admin(), c2.ID), domain.ErrNotFound)

	list, err := f.comments.ListByProduct(f.ctx, product.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
