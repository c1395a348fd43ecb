package corrector

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf16"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spellchecker/internal/dictionary"
	"spellchecker/internal/tokenizer"
	"spellchecker/pkg/options"
)

const fixturePath = "../dictionary/testdata"

func quiet() options.Options {
	return options.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newFixtureCorrector(t *testing.T, opts ...options.Options) *SpellCorrector {
	t.Helper()
	opts = append([]options.Options{quiet(), options.WithSearchPaths(fixturePath)}, opts...)
	sc := NewSpellCorrector(opts...)
	require.NoError(t, sc.SetDictionary("en_US"))
	return sc
}

func TestCheckHelloWorld(t *testing.T) {
	sc := newFixtureCorrector(t)

	assert.Empty(t, sc.CheckString("hello world"))
	assert.True(t, sc.IsMisspelled("wrold"))
	assert.Equal(t, []MisspelledRange{{6, 11}}, sc.CheckString("hello wrold"))

	suggestions := sc.Suggest("wrold")
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "world", suggestions[0])
}

func TestFailOpenWithoutDictionary(t *testing.T) {
	sc := NewSpellCorrector(quiet())

	assert.Equal(t, "", sc.Language())
	assert.Nil(t, sc.Dictionary())
	assert.False(t, sc.IsMisspelled("anything"))
	assert.Empty(t, sc.CheckString("qwzx vbnm, plorf!"))
	assert.Empty(t, sc.CheckSpelling(utf16.Encode([]rune("qwzx vbnm"))))
	assert.Empty(t, sc.Suggest("anything"))
}

func TestRemovedWordWithoutDictionary(t *testing.T) {
	sc := NewSpellCorrector(quiet())
	sc.Remove("x")
	assert.True(t, sc.IsMisspelled("x"))
	assert.Equal(t, []MisspelledRange{{0, 1}}, sc.CheckString("x y"))
}

func TestAddedWordIsCorrect(t *testing.T) {
	sc := newFixtureCorrector(t)
	require.True(t, sc.IsMisspelled("foo"))

	sc.Add("foo")
	assert.False(t, sc.IsMisspelled("foo"))
	assert.Equal(t, []MisspelledRange{{4, 7}}, sc.CheckString("foo bar"))
	assert.Equal(t, []string{"foo"}, sc.AddedWords())
}

func TestRemovalWinsOverAddition(t *testing.T) {
	sc := newFixtureCorrector(t)

	sc.Add("hello")
	sc.Remove("hello")
	assert.True(t, sc.IsMisspelled("hello"))
	assert.Equal(t, []string{"hello"}, sc.RemovedWords())

	sc.Add("hello")
	assert.False(t, sc.IsMisspelled("hello"))
	assert.Empty(t, sc.RemovedWords())
}

func TestWordsWithoutLetters(t *testing.T) {
	sc := newFixtureCorrector(t)
	assert.False(t, sc.IsMisspelled("123"))
	assert.False(t, sc.IsMisspelled(""))
	assert.Equal(t, []MisspelledRange{{9, 14}}, sc.CheckString("hello 66 wrold"))
}

func TestAffixedFormsInText(t *testing.T) {
	sc := newFixtureCorrector(t)
	assert.Equal(t, []MisspelledRange{{14, 20}}, sc.CheckString("unliked tries plaies"))
}

func TestCheckSpellingUTF16Offsets(t *testing.T) {
	sc := newFixtureCorrector(t)
	text := "hello — wrold"

	units := utf16.Encode([]rune(text))
	assert.Equal(t, []MisspelledRange{{8, 13}}, sc.CheckSpelling(units))
	assert.Equal(t, []MisspelledRange{{10, 15}}, sc.CheckString(text))
}

func TestSetDictionaryFailureKeepsPrevious(t *testing.T) {
	sc := newFixtureCorrector(t)

	err := sc.SetDictionary("xx_XX")
	require.Error(t, err)
	assert.ErrorIs(t, err, dictionary.ErrNotFound)
	var le *dictionary.LoadError
	assert.ErrorAs(t, err, &le)

	err = sc.SetDictionaryFromBytes("broken", []byte("SFX A Y 2\n1\nfoo\n"))
	assert.ErrorIs(t, err, dictionary.ErrMalformed)

	assert.Equal(t, "en_US", sc.Language())
	assert.False(t, sc.IsMisspelled("hello"))
}

func TestSetDictionaryFromBytes(t *testing.T) {
	sc := NewSpellCorrector(quiet())
	data := []byte("SFX S Y 1\nSFX S 0 s .\n1\ncat/S\n")

	require.NoError(t, sc.SetDictionaryFromBytes("xx", data))
	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, "xx", sc.Language())
	assert.False(t, sc.IsMisspelled("cats"))
	assert.True(t, sc.IsMisspelled("dogs"))
}

func TestOverridesSurviveReplacement(t *testing.T) {
	sc := newFixtureCorrector(t)
	sc.Add("zzz")
	sc.Remove("hello")

	require.NoError(t, sc.SetDictionaryFromBytes("xx", []byte("1\nhello\n")))
	assert.False(t, sc.IsMisspelled("zzz"))
	assert.True(t, sc.IsMisspelled("hello"))
}

func TestResetOverridesOnReplace(t *testing.T) {
	sc := newFixtureCorrector(t, options.WithResetOverridesOnReplace())
	sc.Add("zzz")
	sc.Remove("hello")

	require.NoError(t, sc.SetDictionaryFromBytes("xx", []byte("1\nhello\n")))
	assert.True(t, sc.IsMisspelled("zzz"))
	assert.False(t, sc.IsMisspelled("hello"))
}

func TestReplaceDictionaryNil(t *testing.T) {
	sc := newFixtureCorrector(t)
	sc.ReplaceDictionary(nil)
	assert.False(t, sc.IsMisspelled("wrold"))
}

func TestAvailableDictionaries(t *testing.T) {
	sc := NewSpellCorrector(quiet())
	assert.Empty(t, sc.AvailableDictionaries("/nonexistent/path"))
	assert.Equal(t, []string{"en_US"}, sc.AvailableDictionaries(fixturePath))
}

func TestCapitalization(t *testing.T) {
	tests := []struct {
		word       string
		strict     bool
		permissive bool
	}{
		{"hello", false, false},
		{"Hello", true, false},
		{"HELLO", true, false},
		{"NASA", false, false},
		{"Nasa", true, true},
		{"nasa", true, true},
		{"ebay", false, false},
		{"Ebay", true, true},
		{"EBAY", true, true},
		{"HeLLo", true, true},
	}
	strict := newFixtureCorrector(t)
	permissive := newFixtureCorrector(t, options.WithCapitalization())
	for _, tc := range tests {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.strict, strict.IsMisspelled(tc.word), "case-sensitive")
			assert.Equal(t, tc.permissive, permissive.IsMisspelled(tc.word), "with capitalization")
		})
	}
}

func TestScenarioTwoStemDictionary(t *testing.T) {
	sc := NewSpellCorrector(quiet())
	require.NoError(t, sc.SetDictionaryFromBytes("en", []byte("2\nhello\nworld\n")))

	assert.Equal(t, []MisspelledRange{{6, 11}}, sc.CheckString("hello wrold!"))
	got := sc.Suggest("wrold")
	require.NotEmpty(t, got)
	assert.Equal(t, "world", got[0])
}

func TestScenarioAddWithoutDictionary(t *testing.T) {
	sc := NewSpellCorrector(quiet())
	sc.Add("foo")
	assert.False(t, sc.IsMisspelled("foo"))
	assert.False(t, sc.IsMisspelled("bar"))
	assert.Empty(t, sc.CheckString("foo bar"))
}

func TestCheckString_with_fuzzed_inputs(t *testing.T) {
	sc := newFixtureCorrector(t)
	sc.Add("zzz")
	sc.Remove("hello")
	words := []string{"hello", "world", "wrold", "zzz", "tries", "plaies", "42", "don't", "unliked"}
	f := fuzz.NewWithSeed(3).NilChance(0).Funcs(func(s *string, c fuzz.Continue) {
		var parts []string
		for n := c.Intn(12); n > 0; n-- {
			parts = append(parts, words[c.Intn(len(words))], []string{" ", ", ", "-", "! ", "\n"}[c.Intn(5)])
		}
		*s = strings.Join(parts, "")
	})

	for i := 0; i < 200; i++ {
		var text string
		f.Fuzz(&text)

		got := sc.CheckString(text)
		flagged := make(map[tokenizer.Token]bool)
		prevEnd := 0
		for _, m := range got {
			require.LessOrEqual(t, prevEnd, m.Start, "ordered ranges in %q", text)
			assert.True(t, sc.IsMisspelled(text[m.Start:m.End]))
			flagged[tokenizer.Token(m)] = true
			prevEnd = m.End
		}
		for tok := range tokenizer.ScanString(text) {
			if !flagged[tok] {
				assert.False(t, sc.IsMisspelled(text[tok.Start:tok.End]), "unflagged %q in %q", text[tok.Start:tok.End], text)
			}
		}
	}
}
