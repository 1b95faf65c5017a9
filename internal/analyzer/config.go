package analyzer

// Config controls the small amount of analyzer policy that isn't fixed by
// the language rules themselves. It mirrors the reference's
// types.DefaultingConfig (internal/types/defaulting.go): a struct with a
// constructor that returns sane defaults, YAML-decodable so cmd/hexencheck
// can load an optional override file.
type Config struct {
	// DiagnoseOverflow toggles the comptime_int literal overflow check
	// against integer target ranges (spec §4.C rule 2). Defaults to true;
	// exists mainly so fixture tests exercising deliberately-overflowing
	// literals for other reasons (e.g. array dimension tests) can disable
	// the unrelated diagnostic without changing the fixture's numbers.
	DiagnoseOverflow bool `yaml:"diagnose_overflow"`

	// MaxArrayRank is decoded from the config file and defaults to 8, but
	// the analyzer does not read it: array types of any rank are accepted.
	MaxArrayRank int `yaml:"max_array_rank"`
}

// DefaultConfig returns the standard analyzer configuration.
func DefaultConfig() *Config {
	return &Config{
		DiagnoseOverflow: true,
		MaxArrayRank:     8,
	}
}
