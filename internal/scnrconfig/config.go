package scnrconfig

// Config is the optional on-disk configuration a scan command can load
// instead of (or alongside) CLI flags. Every field has a meaningful
// CLI-flag-level default, so a Config loaded from an empty file behaves
// exactly like no config at all.
type Config struct {
	// Profile selects the built-in plugin-registration profile:
	// "standard", "sysdiagnose", or "nothing".
	Profile string `toml:"profile"`

	// Filters are glob patterns unioned together to decide whether a
	// recursed-into entry reaches the result stream.
	Filters []string `toml:"filters"`

	// Starters name plugins to register as additional start candidates,
	// ahead of the default filesystem starter.
	Starters []string `toml:"starters"`

	// Overrides bind a glob pattern to a plugin name, at higher priority
	// than the selected profile's built-in patterns.
	Overrides []ConfigOverride `toml:"overrides"`

	// SqliteRowBatchLimit caps how many rows the sqlite decoder puts in
	// one emitted JSON array segment before starting a new one. Zero
	// means use the engine default.
	SqliteRowBatchLimit int `toml:"sqlite_row_batch_limit"`
}

// ConfigOverride is the TOML-table shape of a profiles.Override.
type ConfigOverride struct {
	Glob   string `toml:"glob"`
	Plugin string `toml:"plugin"`
}
