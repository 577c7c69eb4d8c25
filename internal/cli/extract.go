package cli

import (
	stdcontext "context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/scnrgo/scnr/internal/scan"
	"github.com/scnrgo/scnr/internal/scnrconfig"
	"github.com/scnrgo/scnr/internal/scnrerr"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var output string
	var force bool
	log := scnrconfig.NewLogger("extract")

	cmd := &cobra.Command{Use: "extract", Short: "Scan a root path and write each decoded entry to a file tree"}
	cf := addCommonFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "directory to write decoded entries into (required)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite output directory if it already exists")
	_ = cmd.MarkFlagRequired("output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if info, err := os.Stat(output); err == nil && info.IsDir() && !force {
			entries, err := os.ReadDir(output)
			if err == nil && len(entries) > 0 {
				return scnrerr.NewError("output directory is not empty (use --force)", nil)
			}
		}
		if err := os.MkdirAll(output, 0o755); err != nil {
			return scnrerr.NewError("creating output directory", err)
		}

		picker, err := cf.buildPicker()
		if err != nil {
			return err
		}
		filter, err := cf.buildFilter()
		if err != nil {
			return err
		}

		scanner := scan.NewScanner(scan.Options{Filter: filter, Picker: picker})
		it := scanner.Scan(stdcontext.Background(), cf.input)
		defer it.Close()

		worstKind := -1
		for it.Next() {
			if err := it.Err(); err != nil {
				log.Warn("decode error", "error", err)
				worstKind = worseKind(worstKind, kindOf(err))
				continue
			}
			if err := writeEntry(output, it.Entry()); err != nil {
				return scnrerr.NewError("writing extracted entry", err)
			}
		}

		if worstKind >= 0 {
			return &scnrerr.CLIError{Code: scnrerr.ExitCodeFor(scan.ErrorKind(worstKind)), Message: "extract completed with decode errors"}
		}
		return nil
	}

	return cmd
}

func writeEntry(outputDir string, e scan.Entry) error {
	dest := filepath.Join(outputDir, filepath.FromSlash(e.RelPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	switch e.Content.Kind() {
	case scan.KindBytes:
		raw, _ := e.Content.Bytes()
		return os.WriteFile(dest, raw, 0o644)
	case scan.KindText:
		text, _ := e.Content.Text()
		return os.WriteFile(dest, []byte(text), 0o644)
	case scan.KindJSON:
		v, _ := e.Content.JSON()
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(dest, raw, 0o644)
	default:
		return nil
	}
}
