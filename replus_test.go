package replus

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replusdev/replus/template"
)

// testModels mirrors the reference model set: a date grammar, a repeating
// (number, year) pair, and a grab bag of marker constructs.
func testModels() map[string]map[string][]string {
	return map[string]map[string][]string{
		"date": {
			"month_name": {
				"january", "february", "march", "april", "may", "june",
				"july", "august", "september", "october", "november", "december",
			},
			"day":       {`\d{1,2}`},
			"?:ordinal": {"st", "nd", "rd", "th"},
			"year":      {`19\d\d`, `20\d\d`},
			"date":      {"{{month_name}} {{day}}{{ordinal}} {{year}}", "{{day}}/{{day}}/{{year}}"},
			"$PATTERNS": {"{{date}}"},
		},
		"repeated": {
			"number":    {`\d+`},
			"ryear":     {`19\d\d`},
			"numyear":   {"{{number}} of {{ryear}}"},
			"$PATTERNS": {"foobar( {{numyear}})+"},
		},
		"tests": {
			"?:digit":      {`\d`},
			"abg":          {"alpha", "beta", "gamma"},
			"spam":         {"spam"},
			"eggs":         {"eggs"},
			"?=posahead":   {"foo", "bar"},
			"?<=posbehind": {"foo", "bar"},
			"?!negahead":   {"foo", "bar"},
			"?<!negbehind": {"foo", "bar"},
			"$PATTERNS": {
				"This is an unnamed digit group: {{digit}}.",
				"I can match {{abg}} and {{abg}}, and then re-match the last {{#abg}} or the second last {{#abg@2}}",
				"Here is some {{?:spam}} and some {{?>eggs}}",
				"{{negbehind}} blah blah, {{negahead}} foo foo, {{posbehind}} bar bar, {{posahead}} yoyo",
				"{{?<=abg}} {{?<!abg}} {{?!abg}} {{?=abg}}",
			},
		},
	}
}

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := New(testModels(), opts...)
	require.NoError(t, err)
	return engine
}

func TestPatternRegistry(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)

	var sources []string
	for _, p := range engine.Patterns() {
		if p.Type == "tests" {
			sources = append(sources, p.Source)
		}
	}
	assert.Equal(t, []string{
		`This is an unnamed digit group: (?:\d).`,
		`I can match (?<abg_0>alpha|beta|gamma) and (?<abg_1>alpha|beta|gamma), and then re-match the last \k<abg_1> or the second last \k<abg_0>`,
		"Here is some (?:spam) and some (?>eggs)",
		"(?<!foo|bar) blah blah, (?!foo|bar) foo foo, (?<=foo|bar) bar bar, (?=foo|bar) yoyo",
		"(?<=alpha|beta|gamma) (?<!alpha|beta|gamma) (?!alpha|beta|gamma) (?=alpha|beta|gamma)",
	}, sources)
}

func TestParseMatch(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)

	matches, err := engine.Parse("Today is january 1st 1970")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	date := matches[0]
	assert.Equal(t, "date", date.Type())
	assert.Equal(t, "january 1st 1970", date.Value())

	month, err := date.Group("month_name")
	require.NoError(t, err)
	assert.Equal(t, "january", month.Value())

	day, err := date.Group("day")
	require.NoError(t, err)
	assert.Equal(t, "1", day.Value())

	year, err := date.Group("year")
	require.NoError(t, err)
	assert.Equal(t, "1970", year.Value())
}

func TestSearchReturnsNil(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)

	match, err := engine.Search("Today is january 1st 19xx")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFirstLast(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)

	match, err := engine.Search("Today is january 1st 1970", Filters("date"))
	require.NoError(t, err)
	require.NotNil(t, match)

	first := match.First()
	require.NotNil(t, first)
	assert.Equal(t, "date_0", first.Name())

	last := match.Last()
	require.NotNil(t, last)
	assert.Equal(t, "year_0", last.Name())
}

func TestStartEndSpan(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)

	match, err := engine.Search("Today is january 1st 1970", Filters("date"))
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, 9, match.Start())
	assert.Equal(t, 25, match.End())
	assert.Equal(t, Span{Start: 9, End: 25}, match.Span())

	start, err := match.StartOf("year")
	require.NoError(t, err)
	assert.Equal(t, 21, start)

	end, err := match.EndOf("year")
	require.NoError(t, err)
	assert.Equal(t, 25, end)

	yearSpan, err := match.SpanOf("year")
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 21, End: 25}, yearSpan)
}

func TestNoSuchGroup(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)

	match, err := engine.Search("Today is january 1st 1970", Filters("date"))
	require.NoError(t, err)
	require.NotNil(t, match)

	var nsgErr *NoSuchGroupError
	_, err = match.Group("foo")
	require.ErrorAs(t, err, &nsgErr)
	assert.Equal(t, "foo", nsgErr.Key)

	_, err = match.StartOf("foo")
	assert.ErrorAs(t, err, &nsgErr)
	_, err = match.EndOf("foo")
	assert.ErrorAs(t, err, &nsgErr)
	_, err = match.SpanOf("foo")
	assert.ErrorAs(t, err, &nsgErr)

	// A key that resolved to no capture for this particular match reports
	// the same condition; GroupsOf is the emptiness check for optional keys.
	assert.Empty(t, match.GroupsOf("abg"))
	_, err = match.Group("abg")
	assert.ErrorAs(t, err, &nsgErr)
}

func TestFilters(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)

	matches, err := engine.Parse("Today is january 1st 1970", Filters("repeated", "tests"))
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = engine.Parse("Today is january 1st 1970", Exclude("date"))
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = engine.Parse("Today is january 1st 1970", Filters("date"), Exclude("date"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFlags(t *testing.T) {
	t.Parallel()

	insensitive := testEngine(t, WithFlags(IgnoreCase))
	matches, err := insensitive.Parse("Today it's January 1st 1970")
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	sensitive := testEngine(t)
	matches, err = sensitive.Parse("Today it's January 1st 1970")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFlagsFromString(t *testing.T) {
	t.Parallel()

	flags, err := FlagsFromString("imsux")
	require.NoError(t, err)
	assert.Equal(t, IgnoreCase|Multiline|DotAll|Unicode|Extended, flags)

	_, err = FlagsFromString("iq")
	require.Error(t, err)
}

func TestWhitespaceNoise(t *testing.T) {
	t.Parallel()
	m := map[string]map[string][]string{
		"wn": {
			"wn":        {"This is a test (pattern)"},
			"$PATTERNS": {"{{wn}}"},
		},
	}

	engine, err := New(m, WithWhitespaceNoise("#"))
	require.NoError(t, err)

	matches, err := engine.Parse("This#is#a#test#pattern")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "This#is#a#test#pattern", matches[0].Value())
}

func TestBuildErrorBadPattern(t *testing.T) {
	t.Parallel()
	m := map[string]map[string][]string{
		"broken": {
			"bad":       {"This is a test (pattern"},
			"$PATTERNS": {"{{bad}}"},
		},
	}

	_, err := New(m)
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "broken", buildErr.Type)
	assert.Equal(t, "{{bad}}", buildErr.Template)
}

func TestBuildErrorUnknownGroup(t *testing.T) {
	t.Parallel()
	m := map[string]map[string][]string{
		"broken": {
			"known":     {"a"},
			"$PATTERNS": {"{{known}} {{ghost}}"},
		},
	}

	_, err := New(m)
	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "broken", buildErr.Type)

	var ugErr *template.UnknownGroupError
	require.True(t, errors.As(err, &ugErr))
	assert.Equal(t, "ghost", ugErr.Key)
}

func TestOverlapResolutionAcrossTypes(t *testing.T) {
	t.Parallel()
	m := map[string]map[string][]string{
		"long": {
			"lfrag":     {"one two three"},
			"$PATTERNS": {"{{lfrag}}"},
		},
		"short": {
			"sfrag":     {"two"},
			"$PATTERNS": {"{{sfrag}}"},
		},
	}
	engine, err := New(m)
	require.NoError(t, err)

	matches, err := engine.Parse("one two three")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "long", matches[0].Type())

	matches, err = engine.Parse("one two three", AllowOverlap())
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "long", matches[0].Type())
	assert.Equal(t, "short", matches[1].Type())

	matches, err = engine.Parse("one two three", Exclude("long"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "short", matches[0].Type())
}

func TestStartAt(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)
	text := "may 1st 1970 and june 2nd 1971"

	matches, err := engine.Parse(text, Filters("date"))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	matches, err = engine.Parse(text, Filters("date"), StartAt(13))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "june 2nd 1971", matches[0].Value())
}

func TestParseConcurrent(t *testing.T) {
	t.Parallel()
	engine := testEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			matches, err := engine.Parse("Today is january 1st 1970")
			assert.NoError(t, err)
			assert.Len(t, matches, 1)
		}()
	}
	wg.Wait()
}
