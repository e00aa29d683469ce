package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MoodScore is a single emotion label with its confidence in [0,1]
type MoodScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Custom implementation of the []MoodScore serializer. The classifier
// returns the list ordered by descending score and we keep that order

type MoodScores []MoodScore

// Value implements the driver.Valuer interface.
// This defines how the list is stored in the database.
func (m MoodScores) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "", nil
	}

	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to serialize mood scores, %w", err)
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface.
// This defines how the database value is converted back into go.
func (m *MoodScores) Scan(value interface{}) error {
	if value == nil {
		*m = MoodScores{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan MoodScores, %v", value)
		}

		str = string(b)
	}

	if str == "" {
		*m = MoodScores{}
		return nil
	}

	var out MoodScores
	if err := json.Unmarshal([]byte(str), &out); err != nil {
		return fmt.Errorf("failed to deserialize mood scores, %w", err)
	}

	*m = out
	return nil
}
