// Package sanitizer normalizes visitor contact details before they are handed
// to the booking backend.
//
// All functions are idempotent and never fail: input that cannot be
// normalized yields an empty string. Callers keep the raw value alongside
// when they need it.
//
//   - Names: collapse whitespace, trim
//   - Emails: trim, lowercase
//   - Phone numbers: E.164, national numbers read as Indian
package sanitizer
