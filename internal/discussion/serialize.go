package discussion

import (
	"encoding/json"
	"fmt"
)

// MarshalSession serializes a session to a plain structured record.
// Messages and turns reference roles by id only, so the result has no
// cycles and round-trips losslessly.
func MarshalSession(s *Session) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("discussion: marshal session: %w", err)
	}
	return data, nil
}

// UnmarshalSession restores a session from its serialized record.
func UnmarshalSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("discussion: unmarshal session: %w", err)
	}
	return &s, nil
}
