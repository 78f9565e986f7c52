package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const DefaultLocale = "en"

type Translations map[string]string

type catalog struct {
	Fields   Translations `yaml:"FIELDS"`
	Messages Translations `yaml:"MESSAGES"`
}

//go:embed locales/*.yaml
var embedded embed.FS

var (
	locales = make(map[string]catalog)
	mu      sync.RWMutex
	once    sync.Once
)

// LoadTranslations reads every <locale>.yaml file in dir of fsys, replacing
// locales that were already loaded.
func LoadTranslations(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".yaml" {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".yaml")
		filePath := path.Join(dir, entry.Name())

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return err
		}

		var c catalog
		if err := yaml.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}
		locales[locale] = c
	}

	return nil
}

func ensureLoaded() {
	once.Do(func() {
		_ = LoadTranslations(embedded, "locales")
	})
}

func lookup(locale string, pick func(catalog) Translations, key string) (string, bool) {
	ensureLoaded()

	mu.RLock()
	defer mu.RUnlock()

	if c, ok := locales[locale]; ok {
		if val, ok := pick(c)[key]; ok {
			return val, true
		}
	}

	if locale != DefaultLocale {
		if c, ok := locales[DefaultLocale]; ok {
			if val, ok := pick(c)[key]; ok {
				return val, true
			}
		}
	}

	return "", false
}

// Field returns the display label of a product field, or the field name itself.
func Field(locale, field string) string {
	if val, ok := lookup(locale, func(c catalog) Translations { return c.Fields }, field); ok {
		return val
	}
	return field
}

// Translate returns the message for key with {placeholders} substituted from
// args, given as alternating name/value pairs.
func Translate(locale, key string, args ...string) string {
	val, ok := lookup(locale, func(c catalog) Translations { return c.Messages }, key)
	if !ok {
		return key
	}
	if len(args) < 2 {
		return val
	}

	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(val)
}
