// Package nmea classifies and parses NMEA-0183 GNSS sentences into a
// structured fix record.
//
// Supported sentences:
// - GGA: time of day, position, fix quality, satellite count, HDOP, altitude
// - GSV: satellites in view, accumulated across multi-part sequences
//
// Anything else, including recognized but unsupported types such as RMC and
// GSA, is ignored. The trailing *hh checksum is neither stripped nor
// verified.
package nmea
