package cli

import (
	stdcontext "context"
	"encoding/json"

	"github.com/scnrgo/scnr/internal/jqfilter"
	"github.com/scnrgo/scnr/internal/scan"
	"github.com/scnrgo/scnr/internal/scnrconfig"
	"github.com/scnrgo/scnr/internal/scnrerr"
	"github.com/spf13/cobra"
)

func newJQCmd() *cobra.Command {
	var query string
	var noPrettyPrint bool
	log := scnrconfig.NewLogger("jq")

	cmd := &cobra.Command{Use: "jq", Short: "Scan a root path and run a jq query over every JSON entry"}
	cf := addCommonFlags(cmd)
	cmd.Flags().StringVarP(&query, "query", "q", ".", "jq query to run against each JSON entry")
	cmd.Flags().BoolVar(&noPrettyPrint, "no-pretty-print", false, "emit compact JSON instead of indented JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		filt, err := jqfilter.Compile(query)
		if err != nil {
			return scnrerr.NewError("compiling jq query", err)
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

		enc := json.NewEncoder(cmd.OutOrStdout())
		if !noPrettyPrint {
			enc.SetIndent("", "  ")
		}

		worstKind := -1
		for it.Next() {
			if err := it.Err(); err != nil {
				log.Warn("decode error", "error", err)
				worstKind = worseKind(worstKind, kindOf(err))
				continue
			}
			v, ok := it.Entry().Content.JSON()
			if !ok {
				continue
			}
			results, err := filt.Run(v)
			if err != nil {
				log.Warn("jq query failed on entry", "path", it.Entry().RelPath, "error", err)
				worstKind = worseKind(worstKind, scan.KindFormatErr)
				continue
			}
			for _, r := range results {
				if err := enc.Encode(r); err != nil {
					return scnrerr.NewError("writing jq output", err)
				}
			}
		}

		if worstKind >= 0 {
			return &scnrerr.CLIError{Code: scnrerr.ExitCodeFor(scan.ErrorKind(worstKind)), Message: "jq completed with errors"}
		}
		return nil
	}

	return cmd
}
