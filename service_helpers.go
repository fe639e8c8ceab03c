package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseInt64 reads a Sidekiq job argument holding an integer, encoded either
// as a JSON number or as a quoted string.
func parseInt64(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, fmt.Errorf("empty argument")
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return 0, fmt.Errorf("empty string")
		}
	} else {
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return 0, fmt.Errorf("unsupported arg: %s", string(raw))
		}
		text = num.String()
	}
	return strconv.ParseInt(text, 10, 64)
}
