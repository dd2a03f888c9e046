package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/imgclip/internal/bridge"
	"go.klb.dev/imgclip/internal/codec"
	"go.klb.dev/imgclip/internal/format"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy [file]",
		Short: "Publish a file (or stdin) to the clipboard",
		Long: `Reads an image or text payload and publishes it to the clipboard under
the canonical slot for its format. Bitmaps always land in the extended
bitmap slot (CF_DIBV5); consumers convert as needed.

  imgclip copy --format png screenshot.png
  cat notes.txt | imgclip copy --format text
  imgclip copy --format svg diagram.svg`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			return runCopy(v, args)
		},
	}

	f := cmd.Flags()
	f.String("format", "png", "payload format: png|jpeg|gif|bmp|webp|svg|text")
	addCommonFlags(cmd)

	return cmd
}

func runCopy(v *viper.Viper, args []string) error {
	setupLogging(v)

	f, err := format.Parse(v.GetString("format"))
	if err != nil {
		return err
	}

	var data []byte
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	if len(data) == 0 {
		return nil
	}

	client := bridge.Default()

	switch {
	case f == format.Text:
		return client.WriteText(string(data))
	case f.Textual():
		return client.WriteRaw(f, data)
	}

	// Decode first so corrupt input fails here, not in a consumer; the
	// bridge re-encodes under the write-path target.
	img, err := codec.New().Decode(f, data)
	if err != nil {
		return fmt.Errorf("input is not %s: %w", f, err)
	}
	if err := client.WriteImage(f, img); err != nil {
		return err
	}
	slog.Info("copied", "format", f, "bytes", len(data))
	return nil
}
