// Package responsetime holds the averaging logic shared by dispatch records
// and the free-standing response time tracker.
//
// An empty sample set averages to zero. Callers that need to tell "no data"
// apart from a genuine zero mean should check Len or Count first.
package responsetime
