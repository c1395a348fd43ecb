package options

import "log/slog"

// DefaultOptions is the engine configuration used when no option is given.
var DefaultOptions = SpellcheckerOptions{
	MaxSuggestions:          20,
	MinSuggestions:          3,
	MaxTwoEditLength:        12,
	SearchPaths:             nil,
	Capitalization:          false,
	ResetOverridesOnReplace: false,
}

type SpellcheckerOptions struct {
	MaxSuggestions          int      // cap on Suggest output
	MinSuggestions          int      // below this many candidates, two-edit search runs
	MaxTwoEditLength        int      // longest word (in runes) that gets two-edit search
	SearchPaths             []string // directories searched by SetDictionary
	Capitalization          bool     // accept Title/UPPER forms of lowercase stems
	ResetOverridesOnReplace bool     // clear added/removed words on dictionary replacement
	Logger                  *slog.Logger
}

type Options interface {
	Apply(options *SpellcheckerOptions)
}

type FuncConfig struct {
	ops func(options *SpellcheckerOptions)
}

func (w FuncConfig) Apply(conf *SpellcheckerOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *SpellcheckerOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// Resolve applies opts over DefaultOptions and clamps invalid values.
func Resolve(opts ...Options) SpellcheckerOptions {
	conf := DefaultOptions
	conf.SearchPaths = append([]string(nil), DefaultOptions.SearchPaths...)
	for _, o := range opts {
		if o != nil {
			o.Apply(&conf)
		}
	}
	if conf.MaxSuggestions < 1 {
		conf.MaxSuggestions = DefaultOptions.MaxSuggestions
	}
	if conf.MinSuggestions < 0 {
		conf.MinSuggestions = 0
	}
	if conf.MaxTwoEditLength < 0 {
		conf.MaxTwoEditLength = 0
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	return conf
}

func WithMaxSuggestions(n int) Options {
	return NewFuncOption(func(options *SpellcheckerOptions) {
		options.MaxSuggestions = n
	})
}

// WithMinSuggestions sets how many candidates the cheap steps must find
// before the two-edit search is skipped. Zero disables two-edit search.
func WithMinSuggestions(n int) Options {
	return NewFuncOption(func(options *SpellcheckerOptions) {
		options.MinSuggestions = n
	})
}

func WithMaxTwoEditLength(n int) Options {
	return NewFuncOption(func(options *SpellcheckerOptions) {
		options.MaxTwoEditLength = n
	})
}

func WithSearchPaths(paths ...string) Options {
	return NewFuncOption(func(options *SpellcheckerOptions) {
		options.SearchPaths = append(options.SearchPaths, paths...)
	})
}

func WithCapitalization() Options {
	return NewFuncOption(func(options *SpellcheckerOptions) {
		options.Capitalization = true
	})
}

func WithResetOverridesOnReplace() Options {
	return NewFuncOption(func(options *SpellcheckerOptions) {
		options.ResetOverridesOnReplace = true
	})
}

func WithLogger(logger *slog.Logger) Options {
	return NewFuncOption(func(options *SpellcheckerOptions) {
		options.Logger = logger
	})
}
