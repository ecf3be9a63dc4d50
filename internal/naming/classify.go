package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

// ErrAmbiguous is returned when one name matches the grammars of two
// different platforms.
var ErrAmbiguous = errors.New("ambiguous product name")

// Match is the canonical identity recovered from a product name.
type Match struct {
	Grammar string        `json:"grammar"`
	Variant types.Variant `json:"variant"`
	Level   types.Level   `json:"level"`
	Tile    string        `json:"tile"`
	Date    time.Time     `json:"date"`

	metadata MetadataRule
}

// Product builds the catalog value for a matched entry.
func (m Match) Product(name, root, metadata string) types.Product {
	return types.Product{
		Name:     name,
		Variant:  m.Variant,
		Level:    m.Level,
		Tile:     m.Tile,
		Date:     m.Date,
		Root:     root,
		Metadata: metadata,
	}
}

// Metadata returns the metadata rule of the grammar that matched.
func (m Match) Metadata() MetadataRule {
	return m.metadata
}

type rule struct {
	grammar Grammar
	re      *regexp.Regexp
}

// Matcher classifies names against the grammar table. A matcher bound to a
// tile only recognises names of that tile; the tile is substituted into the
// patterns so that similar tiles never produce false positives.
type Matcher struct {
	tile  string
	rules []rule
}

// NewMatcher compiles the grammar table for tile. An empty tile yields a
// generic matcher that accepts any tile.
func NewMatcher(tile string) *Matcher {
	tile = NormalizeTile(tile)
	m := &Matcher{tile: tile, rules: make([]rule, 0, len(Grammars))}
	for _, g := range Grammars {
		m.rules = append(m.rules, rule{grammar: g, re: regexp.MustCompile(compilePattern(g, tile))})
	}
	return m
}

func compilePattern(g Grammar, tile string) string {
	sub := "(?P<tile>" + g.Tile + ")"
	if tile != "" {
		sub = "(?P<tile>" + regexp.QuoteMeta(tile) + ")"
	}
	return strings.Replace(g.Pattern, tileToken, sub, 1)
}

// Tile returns the tile the matcher is bound to, or "" for a generic matcher.
func (m *Matcher) Tile() string {
	return m.tile
}

// Classify returns the identity encoded in name. The boolean is false when no
// grammar matches. An error is returned for names that match two platforms
// or whose matched fields cannot be decoded.
func (m *Matcher) Classify(name string) (Match, bool, error) {
	var (
		found   Match
		matched []types.Platform
	)
	for _, p := range types.Platforms {
		r, sub := m.first(p, name)
		if r == nil {
			continue
		}
		matched = append(matched, p)
		if len(matched) > 1 {
			return Match{}, false, fmt.Errorf("%w: %q matches %s and %s", ErrAmbiguous, name, matched[0], matched[1])
		}
		match, err := m.extract(r, sub)
		if err != nil {
			return Match{}, false, fmt.Errorf("classifying %q with %s: %w", name, r.grammar.ID, err)
		}
		found = match
	}
	return found, len(matched) == 1, nil
}

// first returns the first grammar of platform p matching name.
func (m *Matcher) first(p types.Platform, name string) (*rule, []string) {
	for i := range m.rules {
		r := &m.rules[i]
		if r.grammar.Variant.Platform() != p {
			continue
		}
		if sub := r.re.FindStringSubmatch(name); sub != nil {
			return r, sub
		}
	}
	return nil, nil
}

func (m *Matcher) extract(r *rule, sub []string) (Match, error) {
	g := r.grammar
	out := Match{Grammar: g.ID, Variant: g.Variant, Level: g.Level, Tile: m.tile, metadata: g.Metadata}

	if i := r.re.SubexpIndex("tile"); i >= 0 {
		out.Tile = NormalizeTile(sub[i])
	}
	if g.Levels != nil {
		raw := sub[r.re.SubexpIndex("level")]
		lvl, ok := g.Levels[raw]
		if !ok {
			return Match{}, fmt.Errorf("unknown level token %q", raw)
		}
		out.Level = lvl
	}
	date, err := ParseDate(g.Layout, sub[r.re.SubexpIndex("date")])
	if err != nil {
		return Match{}, err
	}
	out.Date = date
	return out, nil
}

var (
	genericOnce sync.Once
	generic     *Matcher
)

// Classify classifies name against the generic matcher.
func Classify(name string) (Match, bool, error) {
	genericOnce.Do(func() { generic = NewMatcher("") })
	return generic.Classify(name)
}

// Regexp compiles the metadata pattern for a product entry name.
func (r MetadataRule) Regexp(name string) *regexp.Regexp {
	rep := strings.NewReplacer("{name}", regexp.QuoteMeta(name), "{stem}", regexp.QuoteMeta(Stem(name)))
	return regexp.MustCompile(rep.Replace(r.Pattern))
}

// FileName returns the concrete metadata file name for a product entry name.
func (r MetadataRule) FileName(name string) string {
	return strings.NewReplacer("{name}", name, "{stem}", Stem(name)).Replace(r.Template)
}

// Stem returns name up to its first dot.
func Stem(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}
