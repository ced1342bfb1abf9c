package utils

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// NewID returns a short random hex string (16 chars).
func NewID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// NewRunID prefixes NewID with a UTC timestamp so worker run directories
// sort chronologically.
func NewRunID(now time.Time) string {
	return now.UTC().Format("20060102T150405") + "-" + NewID()
}
