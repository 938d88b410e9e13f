// Package playlist renders stream candidates into XSPF, M3U and PLS playlist
// documents, and reads PLS and M3U documents back.
//
// Encoders are pure: output depends only on the candidate order and on which
// URLs are healthy, never on how health results are stored.
package playlist
