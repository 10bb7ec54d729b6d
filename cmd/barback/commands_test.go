package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "joined args to metric", args: []string{"convert", "2", "oz", "--to", "metric"}, want: "59.15 ml"},
		{name: "quoted arg defaults to imperial", args: []string{"convert", "1 l"}, want: "33.81 oz"},
		{name: "unparseable passes through", args: []string{"convert", "a dash", "--to", "metric"}, want: "a dash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestConvertCommand_InvalidSystem(t *testing.T) {
	_, err := execute(t, "convert", "2 oz", "--to", "cubits")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--to must be metric or imperial")
}

func TestConvertCommand_MissingQuantity(t *testing.T) {
	_, err := execute(t, "convert")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "barback "), out)
}
