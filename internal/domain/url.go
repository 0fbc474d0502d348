package domain

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// BuildURL resolves the destination URL for a shortcut. Direct shortcuts
// return their URL as-is; dynamic shortcuts validate the input against the
// optional validation regex and substitute it into the template.
func (s *Shortcut) BuildURL(input string) (string, error) {
	switch s.Type {
	case ShortcutDirect:
		if s.URL == "" {
			return "", errors.Newf("shortcut %q has no url", s.Label)
		}
		return s.URL, nil

	case ShortcutDynamic:
		input = strings.TrimSpace(input)
		if input == "" {
			return "", errors.Newf("shortcut %q requires an input", s.Label)
		}
		if s.ValidationRegex != "" {
			re, err := regexp.Compile(s.ValidationRegex)
			if err != nil {
				return "", errors.Wrapf(err, "shortcut %q has an invalid validation regex", s.Label)
			}
			if !re.MatchString(input) {
				msg := s.ValidationMessage
				if msg == "" {
					msg = "input does not match the expected format"
				}
				return "", errors.New(msg)
			}
		}
		if !strings.Contains(s.URLTemplate, TemplateToken) {
			return "", errors.Newf("shortcut %q template is missing %s", s.Label, TemplateToken)
		}
		return strings.ReplaceAll(s.URLTemplate, TemplateToken, url.QueryEscape(input)), nil

	default:
		return "", errors.Newf("unknown shortcut type %q", s.Type)
	}
}
