package playlist

import (
	"bytes"
	"fmt"

	"github.com/zachfi/radiolist/pkg/station"
)

// M3U renders an extended M3U playlist.
type M3U struct{}

func (*M3U) Format() Format { return FormatM3U }

func (*M3U) Encode(candidates []station.Candidate, health Checker) ([]byte, error) {
	entries, err := healthy(candidates, health)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("#EXTM3U\n")

	for _, c := range entries {
		title := singleLine(c.StationName)
		if c.HasBitrate() {
			title = fmt.Sprintf("%s - %dkbps", title, *c.Bitrate)
		}
		fmt.Fprintf(&buf, "#EXTINF:-1,%s\n", title)
		buf.WriteString(singleLine(c.URL))
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}
