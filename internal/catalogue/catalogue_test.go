package catalogue_test

import (
	"breachcheck/internal/catalogue"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	entries, err := catalogue.Load()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "LinkedIn", entries[0].Name)
	require.EqualValues(t, 3000000000, entries[1].Accounts)
	require.True(t, entries[2].Verified)
}

func TestParse(t *testing.T) {
	entries, err := catalogue.Parse([]byte(""))
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)

	_, err = catalogue.Parse([]byte("name: [unterminated"))
	require.Error(t, err)
}
