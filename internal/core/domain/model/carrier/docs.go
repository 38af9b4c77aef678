// Package carrier defines the carrier Profile value object used to
// personalize job matching.
//
// A Profile is derived on demand from carrier account and vehicle data; it is
// not a persisted aggregate. When account data is missing, DefaultProfile
// supplies a conservative fallback so matching degrades to a best-effort pass
// rather than failing.
package carrier
