package source

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Kind tells how a locator is read.
type Kind uint8

const (
	// KindLocal is an existing regular file on the local filesystem.
	KindLocal Kind = iota + 1
	// KindRemote is an absolute http or https URL.
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Locator is a classified source identifier.
//
// Exactly one of Path (KindLocal) or URL (KindRemote) is set.
type Locator struct {
	Kind Kind
	Path string
	URL  *url.URL
}

// String returns the normalized identifier.
func (l Locator) String() string {
	if l.Kind == KindRemote && l.URL != nil {
		return l.URL.String()
	}

	return l.Path
}

// Normalize trims surrounding white space and a single layer of matching
// enclosing quote characters (either "..." or '...') from identifier.
//
// It returns ErrInvalidSource when nothing is left.
func Normalize(identifier string) (string, error) {
	s := strings.TrimSpace(identifier)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	if s == "" {
		return "", &Error{Op: "normalize", Locator: identifier, Err: ErrInvalidSource}
	}

	return s, nil
}

// Classify normalizes identifier and selects the read strategy once.
//
// An identifier naming an existing regular file is local. Anything else must
// be an absolute http(s) URL; otherwise the source is reported unavailable,
// since there is neither a file to read nor something to fetch.
func Classify(identifier string) (Locator, error) {
	s, err := Normalize(identifier)
	if err != nil {
		return Locator{}, err
	}

	if fi, statErr := os.Stat(s); statErr == nil && fi.Mode().IsRegular() {
		return Locator{Kind: KindLocal, Path: s}, nil
	}

	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Locator{}, &Error{
			Op:      "classify",
			Locator: s,
			Err:     fmt.Errorf("%w: no such file and not an http(s) URL", ErrSourceUnavailable),
		}
	}

	return Locator{Kind: KindRemote, URL: u}, nil
}
