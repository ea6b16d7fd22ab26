// Package labels resolves dial label identifiers to display text.
package labels

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/asheshgoplani/fandial/internal/dial"
	"github.com/asheshgoplani/fandial/internal/logging"
)

var labelsLog = logging.ForComponent(logging.CompLabels)

//go:embed locales/*.toml
var localeFS embed.FS

// Fallback is the locale used when nothing better matches.
var Fallback = language.English

// Catalog holds the strings of one locale plus the fallback strings.
type Catalog struct {
	tag      language.Tag
	strings  map[string]string
	fallback map[string]string
}

// Supported lists the bundled locales, fallback first.
func Supported() []language.Tag {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return []language.Tag{Fallback}
	}
	tags := []language.Tag{Fallback}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if name != Fallback.String() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		tags = append(tags, language.Make(n))
	}
	return tags
}

func loadLocale(tag language.Tag) (map[string]string, error) {
	base, _ := tag.Base()
	data, err := localeFS.ReadFile("locales/" + base.String() + ".toml")
	if err != nil {
		return nil, err
	}
	strs := make(map[string]string)
	if _, err := toml.Decode(string(data), &strs); err != nil {
		return nil, fmt.Errorf("locale %s: %w", base, err)
	}
	return strs, nil
}

// Load returns the catalog that best matches locale, which may be a BCP 47
// tag ("de-AT") or a POSIX locale ("de_AT.UTF-8"). An empty locale falls
// back to the environment, then English.
func Load(locale string) (*Catalog, error) {
	if locale == "" {
		locale = EnvLocale()
	}
	fallback, err := loadLocale(Fallback)
	if err != nil {
		return nil, fmt.Errorf("load fallback labels: %w", err)
	}

	desired := ParseLocale(locale)
	matcher := language.NewMatcher(Supported())
	_, idx, conf := matcher.Match(desired)
	tag := Supported()[idx]
	if conf == language.No {
		tag = Fallback
	}

	strs := fallback
	if tag != Fallback {
		if strs, err = loadLocale(tag); err != nil {
			return nil, fmt.Errorf("load labels for %s: %w", tag, err)
		}
	}
	labelsLog.Debug("catalog_loaded",
		slog.String("requested", locale),
		slog.String("matched", tag.String()))

	return &Catalog{tag: tag, strings: strs, fallback: fallback}, nil
}

// ParseLocale turns "de_AT.UTF-8" or "de-AT" into a language tag.
// Unparseable input yields language.Und.
func ParseLocale(locale string) language.Tag {
	s := locale
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}

// EnvLocale returns the first non-empty of LC_ALL, LC_MESSAGES and LANG.
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// Tag returns the matched locale.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Label implements dial.Labels. Missing keys fall back to English, then to
// the identifier itself.
func (c *Catalog) Label(id dial.LabelID) string {
	if s, ok := c.strings[string(id)]; ok {
		return s
	}
	if s, ok := c.fallback[string(id)]; ok {
		return s
	}
	return string(id)
}
