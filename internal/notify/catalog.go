package notify

import (
	"fmt"
	"maps"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"
)

var colorCode = regexp.MustCompile(`(?i)[&§][0-9a-fk-or]`)

// StripColors removes legacy &x / §x formatting codes
func StripColors(s string) string {
	return colorCode.ReplaceAllString(s, "")
}

// Catalog renders message keys into text with {placeholder} substitution
type Catalog struct {
	messages map[string]string
	printer  *message.Printer
}

// NewCatalog builds the default catalog for a locale, with overrides layered on top
func NewCatalog(tag language.Tag, overrides map[string]string) *Catalog {
	msgs := maps.Clone(defaultMessages)
	maps.Copy(msgs, overrides)
	return &Catalog{messages: msgs, printer: message.NewPrinter(tag)}
}

// LoadCatalogFile reads a nested YAML messages file; nested sections join with dots ("keys.no_key").
// A blank path yields the defaults.
func LoadCatalogFile(path string, tag language.Tag) (*Catalog, error) {
	if path == "" {
		return NewCatalog(tag, nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReadCatalog, err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseCatalog, err)
	}
	flat := make(map[string]string)
	flatten("", tree, flat)
	return NewCatalog(tag, flat), nil
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		}
	}
}

// Has reports whether key is known
func (c *Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Render fills the template for key. Unknown keys render as a visible marker.
func (c *Catalog) Render(key string, placeholders map[string]string) string {
	tmpl, ok := c.messages[key]
	if !ok {
		return "Message not found: " + key
	}
	if len(placeholders) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(placeholders)*2)
	for name, value := range placeholders {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// WithPrefix renders key behind the configured chat prefix
func (c *Catalog) WithPrefix(key string, placeholders map[string]string) string {
	return c.messages[KeyPrefix] + c.Render(key, placeholders)
}

// Amount formats a payout for the catalog's locale, at most two decimals
func (c *Catalog) Amount(v float64) string {
	return c.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Count formats an integer with locale grouping
func (c *Catalog) Count(n int64) string {
	return c.printer.Sprintf("%d", n)
}
