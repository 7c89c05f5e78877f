package main

import (
	"breachcheck/internal/config"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigArgs(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"serve"}, nil},
		{[]string{"-c", "cfg.yaml", "serve"}, []string{"-c", "cfg.yaml"}},
		{[]string{"check", "--config", "cfg.yaml", "--email", "a@x.com"}, []string{"-c", "cfg.yaml"}},
		{[]string{"serve", "--config=cfg.yaml"}, []string{"-c=cfg.yaml"}},
		{[]string{"serve", "-c=cfg.yaml"}, []string{"-c=cfg.yaml"}},
		{[]string{"serve", "-c"}, nil},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, configArgs(tt.args), tt.args)
	}
}

func TestCorpusCommand(t *testing.T) {
	var cfg config.Config
	cfg.LocalDB.Path = filepath.Join(t.TempDir(), "local_breaches.txt")

	var out bytes.Buffer
	cmd := corpusCommand(&cfg)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"add", "a@x.com", "A@X.com", "b@y.com"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "added a@x.com\nA@X.com already present\nadded b@y.com\n", out.String())

	cmd = corpusCommand(&cfg)
	cmd.SetArgs([]string{"add"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())
}
