package cli

import (
	stdcontext "context"
	"encoding/json"
	"fmt"

	"github.com/scnrgo/scnr/internal/scan"
	"github.com/scnrgo/scnr/internal/scnrconfig"
	"github.com/scnrgo/scnr/internal/scnrerr"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var sqliteRowBatchLimit int
	log := scnrconfig.NewLogger("scan")

	cmd := &cobra.Command{Use: "scan", Short: "Scan a root path and print every decoded entry as JSON lines"}
	cf := addCommonFlags(cmd)
	cmd.Flags().IntVar(&sqliteRowBatchLimit, "sqlite-row-batch-limit", 0, "max rows per sqlite table JSON segment (0 = engine default)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		picker, err := cf.buildPicker()
		if err != nil {
			return err
		}
		filter, err := cf.buildFilter()
		if err != nil {
			return err
		}
		rowBatchLimit, err := cf.resolveSqliteRowBatchLimit(sqliteRowBatchLimit, cmd.Flags().Changed("sqlite-row-batch-limit"))
		if err != nil {
			return err
		}

		scanner := scan.NewScanner(scan.Options{
			Filter:              filter,
			Picker:              picker,
			SqliteRowBatchLimit: rowBatchLimit,
		})

		it := scanner.Scan(stdcontext.Background(), cf.input)
		defer it.Close()

		worstKind := -1
		enc := json.NewEncoder(cmd.OutOrStdout())

		for it.Next() {
			if err := it.Err(); err != nil {
				log.Warn("decode error", "error", err)
				worstKind = worseKind(worstKind, kindOf(err))
				continue
			}
			line := map[string]any{
				"path": it.Entry().RelPath,
				"kind": it.Entry().Content.Kind().String(),
			}
			if v, ok := it.Entry().Content.JSON(); ok {
				line["value"] = v
			} else if s, ok := it.Entry().Content.Text(); ok {
				line["value"] = s
			}
			if err := enc.Encode(line); err != nil {
				return scnrerr.NewError("writing scan output", err)
			}
		}

		if worstKind >= 0 {
			kind := scan.ErrorKind(worstKind)
			return &scnrerr.CLIError{Code: scnrerr.ExitCodeFor(kind), Message: fmt.Sprintf("scan completed with %s errors", kind)}
		}
		return nil
	}

	return cmd
}

func kindOf(err error) scan.ErrorKind {
	var se *scan.Error
	if asScanError(err, &se) {
		return se.Kind
	}
	return scan.KindFormatErr
}

func asScanError(err error, target **scan.Error) bool {
	for err != nil {
		if se, ok := err.(*scan.Error); ok {
			*target = se
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func worseKind(current int, kind scan.ErrorKind) int {
	if current < 0 {
		return int(kind)
	}
	if int(kind) > current {
		return int(kind)
	}
	return current
}
