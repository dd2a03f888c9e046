// imgclip: read and write clipboard images across producer formats.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/imgclip/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "imgclip",
		Short: "Clipboard image format resolution",
		Long: `imgclip reads and writes clipboard images regardless of which format a
producer used to publish them. Snip & Sketch registers "PNG", browsers
register "image/png", legacy apps only publish a device-independent bitmap —
imgclip resolves the best available representation and converts on the way
in or out.

Use "imgclip formats" to see what the clipboard currently advertises,
"imgclip paste" to extract an image, "imgclip copy" to publish one.

Config file search order (first found wins):
  /etc/imgclip/imgclip.toml
  $HOME/.config/imgclip/imgclip.toml
  path supplied via --config

All flags can be set via IMGCLIP_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCopyCmd(),
		newPasteCmd(),
		newFormatsCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("imgclip %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(formatStr, levelStr string) {
	logging.Setup(logging.ParseFormat(formatStr), logging.ParseLevel(levelStr))
}
