package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/imgclip/internal/clip"
	"go.klb.dev/imgclip/internal/format"
	"go.klb.dev/imgclip/internal/resolve"
)

func newFormatsCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "Show what the clipboard currently advertises",
		Long: `Takes one clipboard snapshot and prints every advertised slot, plus the
resolution each logical format would get from that snapshot.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runFormats(v) },
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addCommonFlags(cmd)

	return cmd
}

type formatsReport struct {
	Backend  string             `json:"backend"`
	Slots    []string           `json:"slots"`
	Resolved []formatResolution `json:"resolved"`
}

type formatResolution struct {
	Format string `json:"format"`
	Slot   string `json:"slot,omitempty"`
	Alpha  bool   `json:"alpha,omitempty"`
}

func runFormats(v *viper.Viper) error {
	setupLogging(v)

	backend := clip.New()
	session, err := backend.Open()
	if err != nil {
		return err
	}
	snap := session.Snapshot()
	if err := session.Close(); err != nil {
		return err
	}

	report := buildFormatsReport(backend.Name(), snap)

	if v.GetBool("json") {
		enc, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(enc))
		return nil
	}

	printFormats(report)
	return nil
}

func buildFormatsReport(backendName string, snap resolve.Snapshot) formatsReport {
	report := formatsReport{Backend: backendName}
	for _, slot := range snap {
		report.Slots = append(report.Slots, slot.String())
	}
	for _, f := range format.Formats() {
		entry := formatResolution{Format: f.String()}
		if res, ok := resolve.Resolve(snap, f); ok {
			entry.Slot = res.Slot.String()
			entry.Alpha = res.Alpha
		}
		report.Resolved = append(report.Resolved, entry)
	}
	return report
}

func printFormats(report formatsReport) {
	fmt.Printf("backend: %s\n", report.Backend)
	if len(report.Slots) == 0 {
		fmt.Println("clipboard is empty")
		return
	}

	fmt.Println("\nadvertised slots:")
	for _, s := range report.Slots {
		fmt.Printf("  %s\n", s)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FORMAT\tRESOLVES TO\tALPHA")
	for _, r := range report.Resolved {
		slot := r.Slot
		if slot == "" {
			slot = "-"
		}
		alpha := ""
		if r.Slot != "" {
			alpha = fmt.Sprintf("%v", r.Alpha)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Format, slot, alpha)
	}
	w.Flush()
}
