package playlist

import (
	"bytes"
	"fmt"

	"github.com/zachfi/radiolist/pkg/station"
)

// PLS renders a version 2 PLS playlist. Entries are numbered from 1 in the
// order they are written, so skipped streams leave no gaps.
type PLS struct{}

func (*PLS) Format() Format { return FormatPLS }

func (*PLS) Encode(candidates []station.Candidate, health Checker) ([]byte, error) {
	entries, err := healthy(candidates, health)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("[playlist]\n")

	for i, c := range entries {
		n := i + 1
		fmt.Fprintf(&buf, "File%d=%s\n", n, singleLine(c.URL))
		fmt.Fprintf(&buf, "Title%d=%s\n", n, singleLine(c.StationName))
		fmt.Fprintf(&buf, "Length%d=-1\n", n)
	}

	fmt.Fprintf(&buf, "NumberOfEntries=%d\n", len(entries))
	buf.WriteString("Version=2\n")

	return buf.Bytes(), nil
}
