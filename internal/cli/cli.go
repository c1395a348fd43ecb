// Package cli implements the spellcheck command.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"spellchecker/internal/catalog"
	"spellchecker/internal/config"
	"spellchecker/internal/corrector"
	"spellchecker/internal/dictionary"
)

// ErrMisspellingsFound is returned by check when the input has at least
// one misspelled word. It carries no message worth printing.
var ErrMisspellingsFound = errors.New("misspellings found")

type SpellOptions struct {
	ConfigPath     string
	Lang           string
	DictPaths      []string
	AffPath        string
	DicPath        string
	MaxSuggestions int
	LogLevel       string

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

func NewSpellOptions(in io.Reader, out, errOut io.Writer) *SpellOptions {
	return &SpellOptions{In: in, Out: out, ErrOut: errOut}
}

func NewDefaultSpellCmd() *cobra.Command {
	return NewSpellCmd(NewSpellOptions(os.Stdin, os.Stdout, os.Stderr))
}

func NewSpellCmd(o *SpellOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spellcheck",
		Short: "spellcheck finds misspelled words using Hunspell dictionaries",
		Long: `spellcheck finds misspelled words using Hunspell dictionaries.

Dictionaries are looked up by language (e.g. en_US) in the --dict-path
directories, SPELL_DICT_PATH, or the usual system locations. Use --aff and
--dic to load a specific pair of files instead.`,
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.DisableAutoGenTag = true

	f := cmd.PersistentFlags()
	f.StringVarP(&o.ConfigPath, "config", "c", "", "TOML config file")
	f.StringVarP(&o.Lang, "lang", "l", "", "Dictionary language (default from config, en_US)")
	f.StringArrayVarP(&o.DictPaths, "dict-path", "d", nil, "Dictionary directory (can be specified multiple times)")
	f.StringVar(&o.AffPath, "aff", "", "Affix file; requires --dic")
	f.StringVar(&o.DicPath, "dic", "", "Word list file; requires --aff")
	f.IntVarP(&o.MaxSuggestions, "max-suggestions", "n", 0, "Maximum suggestions per word (default from config)")
	f.StringVar(&o.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(NewCheckCmd(o))
	cmd.AddCommand(NewSuggestCmd(o))
	cmd.AddCommand(NewListCmd(o))
	return cmd
}

// settings merges the config file, environment and flags, flags last.
func (o *SpellOptions) settings() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if o.Lang != "" {
		cfg.Spell.Language = o.Lang
	}
	if len(o.DictPaths) > 0 {
		cfg.Spell.DictPaths = o.DictPaths
	}
	if o.MaxSuggestions > 0 {
		cfg.Spell.MaxSuggestions = o.MaxSuggestions
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	logger, err := cfg.Logger(o.ErrOut)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// engine builds a SpellCorrector with a dictionary loaded.
func (o *SpellOptions) engine() (*corrector.SpellCorrector, error) {
	cfg, logger, err := o.settings()
	if err != nil {
		return nil, err
	}
	sc := corrector.NewSpellCorrector(cfg.Options(logger)...)
	if o.AffPath != "" || o.DicPath != "" {
		if o.AffPath == "" || o.DicPath == "" {
			return nil, fmt.Errorf("--aff and --dic must be given together")
		}
		d, err := dictionary.Load(cfg.Spell.Language, o.AffPath, o.DicPath, logger)
		if err != nil {
			return nil, err
		}
		sc.ReplaceDictionary(d)
		return sc, nil
	}
	if err := sc.SetDictionary(cfg.Spell.Language); err != nil {
		return nil, err
	}
	return sc, nil
}

func NewCheckCmd(o *SpellOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE]",
		Short: "Print misspelled words as start:end word",
		Long: `Print each misspelled word of FILE (or standard input) as
"start:end word", with byte offsets. Exits with status 1 when any word
is misspelled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error { return o.RunCheck(args) },
	}
}

func (o *SpellOptions) RunCheck(args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(o.In)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if len(data) == 0 {
		return corrector.ErrInvalidInput
	}

	sc, err := o.engine()
	if err != nil {
		return err
	}
	text := string(data)
	found := sc.CheckString(text)
	for _, m := range found {
		fmt.Fprintf(o.Out, "%d:%d %s\n", m.Start, m.End, text[m.Start:m.End])
	}
	if len(found) > 0 {
		return ErrMisspellingsFound
	}
	return nil
}

func NewSuggestCmd(o *SpellOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest WORD",
		Short: "Print corrections for WORD, best first",
		Args:  cobra.ExactArgs(1),
		RunE:  func(_ *cobra.Command, args []string) error { return o.RunSuggest(args[0]) },
	}
}

func (o *SpellOptions) RunSuggest(word string) error {
	if err := corrector.ValidateWord(word); err != nil {
		return err
	}
	sc, err := o.engine()
	if err != nil {
		return err
	}
	for _, s := range sc.Suggest(word) {
		fmt.Fprintln(o.Out, s)
	}
	return nil
}

func NewListCmd(o *SpellOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [PATH]",
		Short: "List installed dictionaries",
		Long: `List the dictionaries installed under PATH, or under every
dictionary search path when PATH is omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error { return o.RunList(args) },
	}
}

func (o *SpellOptions) RunList(args []string) error {
	var paths []string
	if len(args) == 1 {
		paths = args
	} else {
		cfg, _, err := o.settings()
		if err != nil {
			return err
		}
		paths = cfg.Spell.DictPaths
		if len(paths) == 0 {
			paths = catalog.DefaultSearchPaths()
		}
	}
	var names []string
	for _, p := range paths {
		names = append(names, catalog.ListAvailable(p)...)
	}
	slices.Sort(names)
	for _, n := range slices.Compact(names) {
		fmt.Fprintln(o.Out, n)
	}
	return nil
}
