// Package gps runs the GNSS monitor service: it sources NMEA lines from a
// serial receiver or a replay file, feeds them through the sentence engine in
// internal/nmea, and exposes the resulting fix as a snapshot and as a stream
// of fix copies.
//
// One service owns one logical GNSS source and therefore one visibility
// accumulation session.
package gps
