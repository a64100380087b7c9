// Package i18n holds the localized user-facing strings of the hook.
package i18n

import (
	"embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed catalogs/*.toml
var catalogs embed.FS

// Keys that end up in the rewritten commit message
const (
	KeySummary                 = "commit.summary"
	KeyAssigneeOverridden      = "commit.assignee.overridden"
	KeyCommunicationOverridden = "commit.communication.overridden"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.MustParse("nb"),
}

var matcher = language.NewMatcher(supported)

// Messages maps a message key to a fmt format string
type Messages map[string]string

// Get returns the formatted message for key, or the key itself when unknown
func (m Messages) Get(key string, args ...any) string {
	format, ok := m[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Default returns the English catalog
func Default() Messages {
	msgs, err := readCatalog("en")
	if err != nil {
		// The English catalog is embedded; failing here is a build defect
		panic(err)
	}
	return msgs
}

// Load returns the catalog that best matches the BCP 47 tag lang.
// Empty or unsupported tags give English. Keys missing from a translation
// fall back to English.
func Load(lang string) (Messages, error) {
	msgs := Default()
	name := Match(lang)
	if name == "en" {
		return msgs, nil
	}

	translated, err := readCatalog(name)
	if err != nil {
		return nil, err
	}
	for k, v := range translated {
		msgs[k] = v
	}
	return msgs, nil
}

// Match returns the catalog name chosen for lang
func Match(lang string) string {
	if lang == "" {
		return "en"
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "en"
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "en"
	}
	base, _ := supported[idx].Base()
	return base.String()
}

func readCatalog(name string) (Messages, error) {
	data, err := catalogs.ReadFile("catalogs/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", name, err)
	}

	msgs := make(Messages)
	if err := toml.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("parsing catalog %q: %w", name, err)
	}
	return msgs, nil
}
