package station

// Extract flattens stations into candidates, keeping station order and then
// mount order. Only mounts whose format equals format are included; an empty
// format selects DefaultFormat. URLs are not deduplicated across stations.
func Extract(stations []Station, format string) []Candidate {
	if format == "" {
		format = DefaultFormat
	}

	var candidates []Candidate
	for _, s := range stations {
		for _, m := range s.Mounts {
			if m.Format != format || m.URL == "" {
				continue
			}

			candidates = append(candidates, Candidate{
				URL:                m.URL,
				StationName:        s.Name,
				StationDescription: s.Description,
				StationGenre:       s.Genre,
				StationURL:         s.URL,
				StationArt:         s.Art,
				Bitrate:            m.Bitrate,
				IsDefault:          m.IsDefault,
			})
		}
	}

	return candidates
}

// URLs returns the stream URL of every candidate, in order.
func URLs(candidates []Candidate) []string {
	urls := make([]string, 0, len(candidates))
	for _, c := range candidates {
		urls = append(urls, c.URL)
	}
	return urls
}

// DistinctURLs returns each URL once, in order of first appearance.
func DistinctURLs(candidates []Candidate) []string {
	seen := make(map[string]struct{}, len(candidates))
	urls := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.URL]; ok {
			continue
		}
		seen[c.URL] = struct{}{}
		urls = append(urls, c.URL)
	}
	return urls
}
