package management

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("app:type=Widget", noopHandler()))
	assert.True(t, r.Registered("app:type=Widget"))

	h, ok := r.Lookup("app:type=Widget")
	assert.True(t, ok)
	assert.NotNil(t, h)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("app:type=Widget", noopHandler()))

	err := r.Register("app:type=Widget", noopHandler())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistryValidatesNames(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "app:type=Widget", wantErr: false},
		{name: "logpipe:type=Logging", wantErr: false},
		{name: "", wantErr: true},
		{name: "noseparator", wantErr: true},
		{name: "app:", wantErr: true},
		{name: ":type=Widget", wantErr: true},
		{name: "app:type", wantErr: true},
		{name: "app:=Widget", wantErr: true},
		{name: "app:type=", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry().Register(tt.name, noopHandler())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistryRejectsNilHandler(t *testing.T) {
	err := NewRegistry().Register("app:type=Widget", nil)
	assert.Error(t, err)
}

func TestRegistryDeregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("app:type=Widget", noopHandler()))

	assert.True(t, r.Deregister("app:type=Widget"))
	assert.False(t, r.Registered("app:type=Widget"))
	assert.False(t, r.Deregister("app:type=Widget"))
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("b:type=B", noopHandler()))
	require.NoError(t, r.Register("a:type=A", noopHandler()))

	assert.Equal(t, []string{"a:type=A", "b:type=B"}, r.Names())
}

func TestRegisterOnce(t *testing.T) {
	t.Run("registers then no-ops", func(t *testing.T) {
		r := NewRegistry()
		ctx := core.NewContext()

		require.NoError(t, RegisterOnce(r, ctx, "svc"))
		require.NoError(t, RegisterOnce(r, ctx, "svc"))

		assert.Equal(t, []string{WellKnownName}, r.Names())
	})

	t.Run("exactly one registration under concurrency", func(t *testing.T) {
		r := NewRegistry()
		ctx := core.NewContext()

		const n = 32
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = RegisterOnce(r, ctx, "svc")
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			assert.NoErrorf(t, err, "goroutine %d observed a duplicate-registration error", i)
		}
		assert.Equal(t, []string{WellKnownName}, r.Names())
	})
}
