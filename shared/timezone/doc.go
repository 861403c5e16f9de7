// Package timezone centralizes clock access so that booking dates,
// calendar classification and record metadata all resolve against the
// configured campus timezone rather than the host default.
package timezone
