// Package timezone keeps the application timezone.
//
// The zone comes from APP_TIMEZONE and is loaded on first use, falling back to UTC.
// Timestamps (created_at, last_login, token expiry) use Now. Calendar dates such as
// booking days and holidays are plain dates; Today bridges the two by returning the
// local calendar day as a UTC midnight value.
package timezone
