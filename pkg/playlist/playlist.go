package playlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/zachfi/radiolist/pkg/station"
)

const (
	DefaultTitle   = "The Indie Beat Radio Streams"
	DefaultCreator = "The Indie Beat Radio"
)

// ErrMissingURL is returned when a candidate without a stream URL reaches an encoder.
var ErrMissingURL = errors.New("candidate has no stream url")

// Format names a playlist format. It doubles as the file extension.
type Format string

const (
	FormatXSPF Format = "xspf"
	FormatM3U  Format = "m3u"
	FormatPLS  Format = "pls"
)

// AllFormats lists every supported format in the order they are written.
var AllFormats = []Format{FormatXSPF, FormatM3U, FormatPLS}

func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormats validates a list of format names. Names are case-insensitive
// and duplicates are dropped. An empty list selects AllFormats.
func ParseFormats(names []string) ([]Format, error) {
	var formats []Format
	seen := map[Format]bool{}

	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimSpace(name)))
		if f == "" {
			continue
		}

		switch f {
		case FormatXSPF, FormatM3U, FormatPLS:
		default:
			return nil, fmt.Errorf("unknown playlist format %q", name)
		}

		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}

	if len(formats) == 0 {
		return append([]Format(nil), AllFormats...), nil
	}

	return formats, nil
}

// Checker reports whether a stream URL may be published.
type Checker interface {
	Healthy(url string) bool
}

// Encoder renders the healthy candidates into a playlist document.
type Encoder interface {
	Format() Format
	Encode(candidates []station.Candidate, health Checker) ([]byte, error)
}

type Options struct {
	Title   string
	Creator string
	// Now is the clock used for creation dates. Defaults to time.Now.
	Now func() time.Time
}

func (o *Options) applyDefaults() {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Creator == "" {
		o.Creator = DefaultCreator
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// NewEncoder returns the encoder for f.
func NewEncoder(f Format, opts Options) (Encoder, error) {
	opts.applyDefaults()

	switch f {
	case FormatXSPF:
		return &XSPF{opts: opts}, nil
	case FormatM3U:
		return &M3U{}, nil
	case FormatPLS:
		return &PLS{}, nil
	}

	return nil, fmt.Errorf("unknown playlist format %q", f)
}

// healthy returns the candidates to publish, in order.
func healthy(candidates []station.Candidate, health Checker) ([]station.Candidate, error) {
	var out []station.Candidate
	for i, c := range candidates {
		if c.URL == "" {
			return nil, errors.Wrapf(ErrMissingURL, "candidate %d (%q)", i, c.StationName)
		}
		if health.Healthy(c.URL) {
			out = append(out, c)
		}
	}
	return out, nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// singleLine keeps line oriented formats from being split by a value.
func singleLine(s string) string {
	return lineBreaks.Replace(s)
}
