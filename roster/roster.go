package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"onboarder/models"
)

// Roster is the static allow-list of paid enrollees, stored as a local JSON
// array of learner records. The file is read fresh on every lookup so the
// list can be updated without restarting the bot.
type Roster struct {
	path string
}

// New creates a roster backed by the JSON file at path
func New(path string) *Roster {
	return &Roster{path: path}
}

// Lookup returns the learner record matching the email, or (nil, nil) when
// the email is not on the list. Matching is case-insensitive on trimmed
// emails.
func (r *Roster) Lookup(email string) (*models.LearnerRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var records []models.LearnerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	normalized := normalize(email)
	for i := range records {
		if normalize(records[i].Email) == normalized {
			return &records[i], nil
		}
	}
	return nil, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
