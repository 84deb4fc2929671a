package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EconomyNewsletter/internal/domain"
)

type namedScanner string

func (n namedScanner) Name() string { return string(n) }

func (namedScanner) Scan(context.Context, Request) ([]domain.Article, error) { return nil, nil }

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(namedScanner("cnnbrasil"))
	reg.Register(namedScanner("agencia"))

	got, err := reg.Resolve("cnnbrasil")
	require.NoError(t, err)
	assert.Equal(t, "cnnbrasil", got.Name())
	assert.Equal(t, []string{"agencia", "cnnbrasil"}, reg.Names())

	_, err = reg.Resolve("g1")
	assert.EqualError(t, err, "scanner g1 is not registered (known: agencia, cnnbrasil)")
}

func TestRegistryZeroValue(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(namedScanner("x"))

	_, err := reg.Resolve("x")
	assert.NoError(t, err)
}
