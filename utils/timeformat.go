package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeTime canonicalizes a free-text event time to HH:MM:SS. Full-width
// colons (common in CJK keyboard input) are accepted, seconds are optional.
// An empty input means the event has no fixed time and yields nil.
func NormalizeTime(raw string) (*string, error) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "：", ":"))
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, errors.New("time must be in HH:MM or HH:MM:SS form")
	}
	if len(parts) == 2 {
		parts = append(parts, "0")
	}

	bounds := [3]int{23, 59, 59}
	vals := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > bounds[i] {
			return nil, errors.New("time must be in HH:MM or HH:MM:SS form")
		}
		vals[i] = n
	}

	out := fmt.Sprintf("%02d:%02d:%02d", vals[0], vals[1], vals[2])
	return &out, nil
}
