package models

// LearnerRecord is one entry in the static allow-list of paid enrollees.
// Matched by case-insensitive, whitespace-trimmed email equality.
type LearnerRecord struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Program string `json:"program"`
	Batch   string `json:"batch"`
}
