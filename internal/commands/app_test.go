package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	app := NewApp(&Flags{}, "test")

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"view", "run", "keys", "init", "config"}, names)

	var rootFlags []string
	for _, f := range app.Flags {
		rootFlags = append(rootFlags, f.Names()[0])
	}
	assert.Subset(t, rootFlags, []string{"log-level", "config", "history", "target", "charset"})
	require.NotNil(t, app.Action, "view is the default action")
}
