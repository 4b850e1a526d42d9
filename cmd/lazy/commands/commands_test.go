package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lazy/cmd/lazy/commands"
	"go.trai.ch/lazy/internal/app"
	"go.trai.ch/lazy/internal/build"
)

type call struct {
	command string
	names   []string
	opts    app.RunOptions
}

type mockApp struct {
	calls    []call
	jsonMode bool
	verbose  bool
	err      error
}

func (m *mockApp) ConfigureOutput(jsonMode, verbose bool) {
	m.jsonMode = jsonMode
	m.verbose = verbose
}

func (m *mockApp) Load(_ context.Context, names []string, opts app.RunOptions) error {
	m.calls = append(m.calls, call{"load", names, opts})
	return m.err
}

func (m *mockApp) Preload(_ context.Context, names []string, opts app.RunOptions) error {
	m.calls = append(m.calls, call{"preload", names, opts})
	return m.err
}

func (m *mockApp) Watch(_ context.Context, names []string, opts app.RunOptions) error {
	m.calls = append(m.calls, call{"watch", names, opts})
	return m.err
}

func TestCommands_WiresFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want call
	}{
		{
			name: "load with defaults",
			args: []string{"load", "Card"},
			want: call{"load", []string{"Card"}, app.RunOptions{Manifest: "components.yaml"}},
		},
		{
			name: "load with deps and manifest",
			args: []string{"load", "Page", "Card", "--with-deps", "-m", "ui/site.yaml"},
			want: call{"load", []string{"Page", "Card"}, app.RunOptions{Manifest: "ui/site.yaml", WithDeps: true}},
		},
		{
			name: "preload",
			args: []string{"preload", "Footer", "-d"},
			want: call{"preload", []string{"Footer"}, app.RunOptions{Manifest: "components.yaml", WithDeps: true}},
		},
		{
			name: "watch",
			args: []string{"watch", "Card", "--manifest", "ui"},
			want: call{"watch", []string{"Card"}, app.RunOptions{Manifest: "ui"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockApp{}
			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			require.Len(t, mock.calls, 1)
			assert.Equal(t, tt.want, mock.calls[0])
		})
	}
}

func TestCommands_OutputFlags(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)
	cli.SetArgs([]string{"load", "Card", "--json", "-v"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, mock.jsonMode)
	assert.True(t, mock.verbose)
}

func TestCommands_ReturnsAppError(t *testing.T) {
	mock := &mockApp{err: errors.New("simulated error")}
	cli := commands.New(mock)
	cli.SetArgs([]string{"load", "Card"})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

	err := cli.Execute(context.Background())
	require.ErrorContains(t, err, "simulated error")
}

func TestCommands_ShowsUsageWithoutComponents(t *testing.T) {
	for _, command := range []string{"load", "preload", "watch"} {
		t.Run(command, func(t *testing.T) {
			mock := &mockApp{}
			cli := commands.New(mock)
			buf := new(bytes.Buffer)
			cli.SetOutput(buf, buf)
			cli.SetArgs([]string{command})

			require.NoError(t, cli.Execute(context.Background()))
			assert.Contains(t, buf.String(), "Usage:")
			assert.Empty(t, mock.calls)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "lazy version "+build.Version)
}
