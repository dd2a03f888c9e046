package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/imgclip/internal/bridge"
	"go.klb.dev/imgclip/internal/codec"
	"go.klb.dev/imgclip/internal/format"
)

// autoPrefs is the "richest acceptable" preference order used by
// --format auto: alpha-capable formats first, lossy and legacy last.
var autoPrefs = []format.Format{
	format.Png, format.WebP, format.Jpeg, format.Gif, format.Bmp,
}

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Write the clipboard image (or text) to stdout",
		Long: `Resolves the best available clipboard representation and writes it out.

With --format auto the preference order is png, webp, jpeg, gif, bmp and the
output container matches the resolved format. With an explicit --format the
clipboard content is converted to that container:

  imgclip paste --format png > screenshot.png
  imgclip paste --format text
  imgclip paste --format svg --out diagram.svg

If the clipboard holds nothing acceptable, nothing is printed (exit 0).`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runPaste(v) },
	}

	f := cmd.Flags()
	f.String("format", "auto", "output format: auto|png|jpeg|gif|bmp|webp|svg|text")
	f.String("out", "-", "output file (- for stdout)")
	addCommonFlags(cmd)

	return cmd
}

func runPaste(v *viper.Viper) error {
	setupLogging(v)
	client := bridge.Default()

	formatStr := v.GetString("format")

	var out []byte
	var err error
	switch formatStr {
	case "auto":
		out, err = pasteAuto(client)
	default:
		var f format.Format
		f, err = format.Parse(formatStr)
		if err != nil {
			return err
		}
		out, err = pasteAs(client, f)
	}
	if err != nil {
		// Nothing acceptable on the clipboard — print nothing, exit 0
		// (pbpaste behaviour).
		if errors.Is(err, bridge.ErrNotAvailable) {
			slog.Debug("clipboard holds no matching content")
			return nil
		}
		return err
	}
	return writeOut(v.GetString("out"), out)
}

// pasteAuto keeps the resolved container: no re-encode, the slot payload is
// already in the format we would emit.
func pasteAuto(client *bridge.Client) ([]byte, error) {
	res, data, err := client.ReadRaw(autoPrefs)
	if err != nil {
		return nil, err
	}
	slog.Info("pasted", "format", res.Format, "slot", res.Slot)
	return data, nil
}

func pasteAs(client *bridge.Client, f format.Format) ([]byte, error) {
	switch f {
	case format.Text:
		s, err := client.ReadText()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case format.Svg:
		_, data, err := client.ReadRaw([]format.Format{format.Svg})
		return data, err
	}

	// Accept any decodable source, convert to the requested container.
	src, img, err := client.ReadImage(autoPrefs)
	if err != nil {
		return nil, err
	}
	if src != f {
		slog.Info("converting", "from", src, "to", f)
	}
	return codec.New().Encode(f, img)
}

func writeOut(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
