package spam

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var linkPattern = regexp.MustCompile(`(?i)https?://`)

// KeywordClassifier flags content that matches a blocked term or carries
// more links than MaxLinks. Title and file name are checked too.
type KeywordClassifier struct {
	patterns []*regexp.Regexp
	MaxLinks int
}

func NewKeywordClassifier(keywords []string, maxLinks int) (*KeywordClassifier, error) {
	c := &KeywordClassifier{MaxLinks: maxLinks}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("spam keyword %q: %w", kw, err)
		}
		c.patterns = append(c.patterns, re)
	}
	return c, nil
}

// ParseKeywords splits a comma separated list, dropping blanks.
func ParseKeywords(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *KeywordClassifier) IsSpam(_ context.Context, content string, meta Metadata) (bool, error) {
	if c.MaxLinks > 0 && len(linkPattern.FindAllStringIndex(content, -1)) > c.MaxLinks {
		return true, nil
	}
	for _, text := range []string{content, meta.Title, meta.FileName} {
		for _, re := range c.patterns {
			if re.MatchString(text) {
				return true, nil
			}
		}
	}
	return false, nil
}
