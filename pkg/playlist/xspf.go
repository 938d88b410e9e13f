package playlist

import (
	"bytes"
	"encoding/xml"
	"time"

	"github.com/pkg/errors"

	"github.com/zachfi/radiolist/pkg/station"
)

const xspfNamespace = "http://xspf.org/ns/0/"

type xspfPlaylist struct {
	XMLName   xml.Name      `xml:"http://xspf.org/ns/0/ playlist"`
	Version   string        `xml:"version,attr"`
	Title     string        `xml:"title"`
	Date      string        `xml:"date"`
	TrackList xspfTrackList `xml:"trackList"`
}

type xspfTrackList struct {
	Tracks []xspfTrack `xml:"track"`
}

type xspfTrack struct {
	Location   string    `xml:"location"`
	Title      string    `xml:"title"`
	Creator    string    `xml:"creator"`
	Annotation string    `xml:"annotation"`
	Info       string    `xml:"info"`
	Meta       *xspfMeta `xml:"meta,omitempty"`
	Image      string    `xml:"image,omitempty"`
}

type xspfMeta struct {
	Rel   string `xml:"rel,attr"`
	Value string `xml:",chardata"`
}

// XSPF renders an XSPF version 1 playlist, indented by two spaces.
type XSPF struct {
	opts Options
}

func (*XSPF) Format() Format { return FormatXSPF }

func (x *XSPF) Encode(candidates []station.Candidate, health Checker) ([]byte, error) {
	entries, err := healthy(candidates, health)
	if err != nil {
		return nil, err
	}

	opts := x.opts
	opts.applyDefaults()

	doc := xspfPlaylist{
		Version: "1",
		Title:   opts.Title,
		Date:    opts.Now().UTC().Format(time.RFC3339),
	}

	for _, c := range entries {
		track := xspfTrack{
			Location:   c.URL,
			Title:      c.StationName,
			Creator:    opts.Creator,
			Annotation: c.StationDescription,
			Info:       c.StationURL,
			Image:      c.StationArt,
		}
		if c.StationGenre != "" {
			track.Meta = &xspfMeta{Rel: "genre", Value: c.StationGenre}
		}
		doc.TrackList.Tracks = append(doc.TrackList.Tracks, track)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal xspf")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(out)
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
