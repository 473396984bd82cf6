package commands

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"
)

// captureGlob matches the files offered when completing view arguments.
const captureGlob = "**/*.{log,txt,cap}"

// CaptureFileCompleter suggests session logs below the working directory
// as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func CaptureFileCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		matches, err := doublestar.FilepathGlob(captureGlob)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, m := range matches {
			_, _ = fmt.Fprintln(w, m)
		}
	}
}
