package cli

import (
	"github.com/scnrgo/scnr/internal/profiles"
	"github.com/scnrgo/scnr/internal/scan"
	"github.com/scnrgo/scnr/internal/scnrconfig"
	"github.com/scnrgo/scnr/internal/scnrerr"
	"github.com/spf13/cobra"
)

// commonFlags are shared by every subcommand that runs a scan: scan,
// extract, and jq all walk the same root under the same filter/picker, they
// just do different things with the resulting entries.
type commonFlags struct {
	cmd      *cobra.Command
	input    string
	filters  []string
	starters []string
	cfg      []string
	profile  string
	config   string

	fileConfig       *scnrconfig.Config
	fileConfigLoaded bool
}

func addCommonFlags(cmd *cobra.Command) *commonFlags {
	cf := &commonFlags{cmd: cmd}
	cmd.Flags().StringVar(&cf.input, "input", "", "root path to scan (required)")
	cmd.Flags().StringArrayVar(&cf.filters, "filter", nil, "glob pattern to allow through the result filter (repeatable)")
	cmd.Flags().StringArrayVar(&cf.starters, "starter", nil, "plugin name to register as an additional start candidate (repeatable)")
	cmd.Flags().StringArrayVar(&cf.cfg, "cfg", nil, "glob=plugin override; earlier entries take priority over later ones (repeatable)")
	cmd.Flags().StringVar(&cf.profile, "profile", "standard", "plugin registration profile: standard, sysdiagnose, or nothing")
	cmd.Flags().StringVar(&cf.config, "config", "", "path to a scnr.toml file providing defaults for --profile/--filter/--starter/--cfg; explicit flags always win")
	_ = cmd.MarkFlagRequired("input")
	return cf
}

// loadFileConfig loads --config on first use and caches the result, so
// buildPicker and buildFilter (and a scan command's own row-batch-limit
// resolution) don't each re-read the file.
func (cf *commonFlags) loadFileConfig() (*scnrconfig.Config, error) {
	if cf.fileConfigLoaded {
		return cf.fileConfig, nil
	}
	cf.fileConfigLoaded = true
	if cf.config == "" {
		return nil, nil
	}
	loaded, err := scnrconfig.LoadFromFile(cf.config)
	if err != nil {
		return nil, err
	}
	cf.fileConfig = loaded
	return cf.fileConfig, nil
}

// buildPicker turns commonFlags into a *scan.Picker: it resolves --profile,
// parses --cfg entries, and reverses them before calling profiles.Build,
// since --cfg is collected in command-line order but profiles.Build expects
// overrides ordered from lowest to highest priority — the opposite of how a
// user naturally lists "the most specific pattern last". Any of --profile,
// --starter, or --cfg left at its flag default falls back to the matching
// field from --config, if one was given; an explicit flag always wins.
func (cf *commonFlags) buildPicker() (*scan.Picker, error) {
	fileCfg, err := cf.loadFileConfig()
	if err != nil {
		return nil, scnrerr.NewError("loading --config", err)
	}

	profileName := cf.profile
	if fileCfg != nil && fileCfg.Profile != "" && !cf.cmd.Flags().Changed("profile") {
		profileName = fileCfg.Profile
	}
	profile, err := parseProfile(profileName)
	if err != nil {
		return nil, scnrerr.NewError("invalid --profile", err)
	}

	starters := cf.starters
	if fileCfg != nil && len(starters) == 0 {
		starters = fileCfg.Starters
	}

	overrides, err := parseOverrides(cf.cfg)
	if err != nil {
		return nil, scnrerr.NewError("invalid --cfg", err)
	}
	reverseOverrides(overrides)
	if fileCfg != nil && len(cf.cfg) == 0 {
		for _, o := range fileCfg.Overrides {
			overrides = append(overrides, profiles.Override{Glob: o.Glob, Plugin: o.Plugin})
		}
	}

	picker, err := profiles.Build(profile, overrides, starters)
	if err != nil {
		return nil, scnrerr.NewError("building plugin picker", err)
	}
	return picker, nil
}

// buildFilter turns --filter globs into a scan.Filter, falling back to
// --config's filters when --filter was never given. No filters at all from
// either source means AllowAll: a scan with no explicit filtering lets
// everything a plugin recurses into reach the result stream.
func (cf *commonFlags) buildFilter() (scan.Filter, error) {
	filters := cf.filters
	if len(filters) == 0 {
		fileCfg, err := cf.loadFileConfig()
		if err != nil {
			return nil, scnrerr.NewError("loading --config", err)
		}
		if fileCfg != nil {
			filters = fileCfg.Filters
		}
	}
	if len(filters) == 0 {
		return scan.AllowAll, nil
	}
	glob, err := scan.NewGlobUnion(filters)
	if err != nil {
		return nil, scnrerr.NewError("invalid --filter", err)
	}
	return glob, nil
}

// resolveSqliteRowBatchLimit returns flagValue if the caller's own flag was
// explicitly set (flagChanged), otherwise --config's sqlite_row_batch_limit
// if one was given and is positive, otherwise flagValue unchanged (the
// scanner's own default applies from there).
func (cf *commonFlags) resolveSqliteRowBatchLimit(flagValue int, flagChanged bool) (int, error) {
	if flagChanged {
		return flagValue, nil
	}
	fileCfg, err := cf.loadFileConfig()
	if err != nil {
		return 0, scnrerr.NewError("loading --config", err)
	}
	if fileCfg != nil && fileCfg.SqliteRowBatchLimit > 0 {
		return fileCfg.SqliteRowBatchLimit, nil
	}
	return flagValue, nil
}

func parseProfile(name string) (profiles.Profile, error) {
	switch name {
	case "standard", "":
		return profiles.Standard, nil
	case "sysdiagnose":
		return profiles.Sysdiagnose, nil
	case "nothing":
		return profiles.Nothing, nil
	default:
		return profiles.Standard, &unknownProfileError{name: name}
	}
}

type unknownProfileError struct{ name string }

func (e *unknownProfileError) Error() string {
	return "unknown profile " + e.name
}

func parseOverrides(raw []string) ([]profiles.Override, error) {
	overrides := make([]profiles.Override, 0, len(raw))
	for _, kv := range raw {
		glob, plugin, err := splitKeyVal(kv)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, profiles.Override{Glob: glob, Plugin: plugin})
	}
	return overrides, nil
}

func splitKeyVal(kv string) (key, value string, err error) {
	for i := len(kv) - 1; i >= 0; i-- {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:], nil
		}
	}
	return "", "", &malformedKeyValError{raw: kv}
}

type malformedKeyValError struct{ raw string }

func (e *malformedKeyValError) Error() string {
	return "expected glob=plugin, got " + e.raw
}

func reverseOverrides(o []profiles.Override) {
	for i, j := 0, len(o)-1; i < j; i, j = i+1, j-1 {
		o[i], o[j] = o[j], o[i]
	}
}
