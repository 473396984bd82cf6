package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/backscroll/internal/core/styles"
	"github.com/colonyops/backscroll/internal/tui/viewer"
)

type KeysCmd struct {
	flags *Flags
	raw   bool
}

// NewKeysCmd creates a new keys command
func NewKeysCmd(flags *Flags) *KeysCmd {
	return &KeysCmd{flags: flags}
}

// Register adds the keys command to the application.
func (cmd *KeysCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "keys",
		Usage: "Show the history viewer key reference",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print the markdown source instead of rendering it",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *KeysCmd) run(_ context.Context, c *cli.Command) error {
	w := c.Root().Writer
	doc := viewer.DefaultKeyMap().Markdown()
	if cmd.raw {
		_, err := fmt.Fprint(w, doc)
		return err
	}

	width, _ := terminalSize()
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(min(width, 100)),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render key reference: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}
