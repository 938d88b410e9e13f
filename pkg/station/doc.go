// Package station models the station directory of a radio network and
// flattens it into the stream candidates that get probed and written into
// playlists.
package station
