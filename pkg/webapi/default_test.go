package webapi_test

import (
	"testing"

	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/stretchr/testify/require"
)

func TestDefaultClient(t *testing.T) {
	previous := webapi.Key()
	t.Cleanup(func() { webapi.SetKey(previous) })

	require.Same(t, webapi.Default(), webapi.Default())

	webapi.SetKey("")
	require.Empty(t, webapi.Key())

	// Without a key nothing leaves the process.
	res, err := webapi.ResolveName(t.Context(), "gabelogannewell")
	require.NoError(t, err)
	require.Equal(t, webapi.KindAuth, res.Error.Kind)

	res, err = webapi.ResolveName(t.Context(), " ")
	require.NoError(t, err)
	require.Equal(t, webapi.KindInput, res.Error.Kind)

	webapi.SetKey(testKey)
	require.Equal(t, testKey, webapi.Key())
	require.Equal(t, testKey, webapi.Default().Key())
}
