// Package timezone pins every business date (booking windows, notice
// periods, room slots) to one configured IANA location, APP_TIMEZONE,
// which defaults to Asia/Kolkata.
package timezone
