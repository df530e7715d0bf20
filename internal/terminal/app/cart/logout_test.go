package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posterminal/internal/terminal/adapters/storage"
	"posterminal/internal/terminal/app/cart"
	"posterminal/internal/terminal/app/session"
	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/api"
)

// authStub - бэкенд, который принимает выход.
type authStub struct {
	api.AuthAPI
}

func (authStub) Logout(context.Context) error { return nil }

func TestClearOnLogout(t *testing.T) {
	tests := []struct {
		name string
		end  func(*testing.T, context.Context, *session.Coordinator)
	}{
		{"logout", func(t *testing.T, ctx context.Context, c *session.Coordinator) { require.NoError(t, c.Logout(ctx)) }},
		{"forced logout", func(_ *testing.T, ctx context.Context, c *session.Coordinator) { c.ForceLogout(ctx) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := storage.NewMemoryStore()
			require.NoError(t, store.Set(ctx, "a0", "r0"))
			coord := session.NewCoordinator(authStub{}, store, nil, session.Options{RefreshTimeout: time.Second})

			c := cart.New()
			cart.ClearOnLogout(c, coord)
			c.AddProduct(product("a", 1, 10), 2)

			tt.end(t, ctx, coord)

			assert.Empty(t, c.Products())
			assert.Zero(t, c.ItemCount())
			creds, err := store.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, entities.Credentials{}, creds)
		})
	}
}
