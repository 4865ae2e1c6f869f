package engine

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"time"
)

// GenerateRunID generates a timestamp-based run ID used to correlate the
// log lines of one run.
// Format: run-YYYYMMDD-HHMMSS-<hash>
// Example: run-20250311-143022-a7b3c1d2.
func GenerateRunID() string {
	now := time.Now().UTC()

	timestamp := now.Format("20060102-150405")

	// Hash over the nanosecond clock and a random value so two runs starting
	// in the same second still get distinct IDs.
	source := fmt.Sprintf("%d-%d", now.UnixNano(), rand.Int63())
	hash := md5.Sum([]byte(source))
	shortHash := fmt.Sprintf("%x", hash)[:8]

	return fmt.Sprintf("run-%s-%s", timestamp, shortHash)
}

// ParseRunID extracts the timestamp and hash portions of a run ID.
func ParseRunID(runID string) (time.Time, string, error) {
	if len(runID) < 28 || runID[:4] != "run-" {
		return time.Time{}, "", fmt.Errorf("invalid run ID format: %s", runID)
	}

	// Timestamp portion (positions 4-19: YYYYMMDD-HHMMSS).
	timestampStr := runID[4:19]
	timestamp, err := time.Parse("20060102-150405", timestampStr)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid timestamp in run ID %s: %v", runID, err)
	}

	if runID[19] != '-' {
		return time.Time{}, "", fmt.Errorf("invalid run ID format: missing hash portion in %s", runID)
	}

	hash := runID[20:]
	if len(hash) != 8 {
		return time.Time{}, "", fmt.Errorf("invalid hash length in run ID %s: expected 8 characters, got %d", runID, len(hash))
	}

	return timestamp, hash, nil
}

// IsValidRunID checks whether a string follows the run ID format.
func IsValidRunID(runID string) bool {
	_, _, err := ParseRunID(runID)
	return err == nil
}
