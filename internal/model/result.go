package model

import "time"

// ConversionResult records the outcome of one attempted (or skipped) file.
// A result is immutable once returned by the converter.
type ConversionResult struct {
	Input       string        // Full path to the source file
	Output      string        // Derived output path (set even on failure)
	Success     bool
	Skipped     bool          // True when skip-existing short-circuited the encode
	Elapsed     time.Duration // Wall-clock conversion time; 0 when skipped
	OriginalMB  float64       // Source size in megabytes; 0 when skipped
	ConvertedMB float64       // Output size in megabytes; 0 on failure
	ErrMessage  string        // Diagnostic text on failure, empty on success
}

// SavedMB returns the per-file size delta. Negative when the output grew.
func (r ConversionResult) SavedMB() float64 {
	if !r.Success {
		return 0
	}
	return r.OriginalMB - r.ConvertedMB
}
