package station

// DefaultFormat is the mount format included in playlists unless configured otherwise.
const DefaultFormat = "mp3"

// Station is a radio channel as returned by the station directory.
type Station struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Genre       string  `json:"genre"`
	URL         string  `json:"url"`
	Art         string  `json:"art"`
	Mounts      []Mount `json:"mounts"`
}

// Mount is a single stream endpoint of a station.
type Mount struct {
	URL       string `json:"url"`
	Format    string `json:"format"`
	Bitrate   *int   `json:"bitrate"`
	IsDefault bool   `json:"is_default"`
}

// Candidate is a mount flattened together with the metadata of its station.
// URL is the join key against health results and is compared verbatim.
type Candidate struct {
	URL                string
	StationName        string
	StationDescription string
	StationGenre       string
	StationURL         string
	StationArt         string
	Bitrate            *int
	IsDefault          bool
}

// HasBitrate reports whether the mount advertised a usable bitrate.
func (c Candidate) HasBitrate() bool {
	return c.Bitrate != nil && *c.Bitrate > 0
}
