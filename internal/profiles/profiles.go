// Package profiles assembles a *scan.Picker from one of a small set of named
// plugin-registration profiles, plus any caller-supplied glob overrides.
package profiles

import (
	"github.com/scnrgo/scnr/internal/scan"
	"github.com/scnrgo/scnr/internal/scan/plugins"
)

// Profile names one of the built-in plugin-registration layouts.
type Profile int

const (
	// Standard registers the common archive and structured-format
	// decoders: tar.gz, tar.xz, zip, json, xml, yaml, toml, text/log,
	// plist, sqlite.
	Standard Profile = iota
	// Sysdiagnose extends Standard with the extra glob patterns
	// sysdiagnose bundles use for plist and sqlite content under
	// non-standard extensions, plus *.log* as text and *.ips as ips.
	Sysdiagnose
	// Nothing registers no default decoders, not even the filesystem
	// starter: unless Build is given extra starters, a scan built from it
	// fails to start.
	Nothing
)

// Override is a caller-supplied glob-to-plugin binding, given highest
// priority over every built-in pattern for that profile.
type Override struct {
	Glob   string
	Plugin string
}

// UnknownPluginError reports an Override naming a plugin this package does
// not know how to construct.
type UnknownPluginError struct {
	Name string
}

func (e *UnknownPluginError) Error() string {
	return "profiles: unknown plugin name " + e.Name
}

// Build assembles a *scan.Picker for profile, registering extraStarters as
// additional start candidates ahead of the default filesystem starter, with
// overrides applied last — and therefore with the highest match priority,
// since Picker.Insert prepends.
//
// overrides must already be in the order they should take priority: the
// first override in the slice ends up with the lowest priority among
// overrides, the last the highest. Command-line tools collecting --cfg
// flags in the order the user wrote them must reverse that slice before
// calling Build, so that an earlier --cfg wins over a later one — see
// internal/cli for where that reversal happens.
func Build(profile Profile, overrides []Override, extraStarters []string) (*scan.Picker, error) {
	builder := scan.NewPickerBuilder()

	if profile != Nothing {
		if err := registerDefaults(builder, profile); err != nil {
			return nil, err
		}
	}

	for _, name := range extraStarters {
		plugin, err := namedPlugin(name)
		if err != nil {
			return nil, err
		}
		builder.PushStarter(plugin)
	}

	for _, o := range overrides {
		plugin, err := namedPlugin(o.Plugin)
		if err != nil {
			return nil, err
		}
		if _, err := builder.Insert(o.Glob, plugin); err != nil {
			return nil, err
		}
	}

	if profile == Nothing {
		return builder.BuildAsIs(), nil
	}
	return builder.BuildWithDefaults(plugins.FileSystem{}, plugins.LastResort{})
}

func registerDefaults(b *scan.PickerBuilder, profile Profile) error {
	type binding struct {
		glob   string
		plugin scan.Plugin
	}

	base := []binding{
		{"*.tar.gz", plugins.TarGz{}},
		{"*.tgz", plugins.TarGz{}},
		{"*.tar.xz", plugins.TarXz{}},
		{"*.zip", plugins.Zip{}},
		{"*.json", plugins.JSON{}},
		{"*.xml", plugins.XML{}},
		{"*.yaml", plugins.YAML{}},
		{"*.yml", plugins.YAML{}},
		{"*.toml", plugins.TOML{}},
		{"*.txt", plugins.Text{}},
		{"*.rs", plugins.Text{}},
		{"*.log", plugins.Text{}},
		{"*.csv*", plugins.Text{}},
		{"*.plist", plugins.Plist{}},
		{"*.db", plugins.Sqlite{}},
		{"*.sqlite", plugins.Sqlite{}},
		{"*.sqlite3", plugins.Sqlite{}},
		{"*.sqlitedb", plugins.Sqlite{}},
	}

	if profile == Sysdiagnose {
		base = append(base,
			binding{"*.stub", plugins.Plist{}},
			binding{"*.plsql", plugins.Sqlite{}},
			binding{"*.epsql", plugins.Sqlite{}},
			binding{"*.log*", plugins.Text{}},
			binding{"*.ips", plugins.IPS{}},
		)
	}

	for _, bnd := range base {
		if _, err := b.Push(bnd.glob, bnd.plugin); err != nil {
			return err
		}
	}
	return nil
}

func namedPlugin(name string) (scan.Plugin, error) {
	switch name {
	case "filesystem":
		return plugins.FileSystem{}, nil
	case "json":
		return plugins.JSON{}, nil
	case "yaml":
		return plugins.YAML{}, nil
	case "toml":
		return plugins.TOML{}, nil
	case "xml":
		return plugins.XML{}, nil
	case "ips":
		return plugins.IPS{}, nil
	case "zip":
		return plugins.Zip{}, nil
	case "targz":
		return plugins.TarGz{}, nil
	case "tarxz":
		return plugins.TarXz{}, nil
	case "text":
		return plugins.Text{}, nil
	case "plist":
		return plugins.Plist{}, nil
	case "sqlite":
		return plugins.Sqlite{}, nil
	case "bin":
		return plugins.Bin{}, nil
	default:
		return nil, &UnknownPluginError{Name: name}
	}
}
