// ABOUTME: DocumentRecord tracks an uploaded document within a session
// ABOUTME: Appended on each successful upload, never mutated, cleared on session cleanup
package models

import "time"

// DocumentRecord describes one successfully processed upload.
type DocumentRecord struct {
	Filename   string            `json:"filename"`
	Chunks     int               `json:"chunks"`
	UploadTime time.Time         `json:"upload_time"`
	Insights   *DocumentInsights `json:"insights,omitempty"`
}

// UploadResult is the success payload for a processed document.
type UploadResult struct {
	Message  string            `json:"message"`
	Insights *DocumentInsights `json:"insights"`
}
