package either

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	keyLeft  = "left"
	keyRight = "right"
)

var errMalformed = errors.New("either: malformed JSON object")

// MarshalJSON encodes e as {"left": value} or {"right": value}.
// A nil payload, as held by the zero value of Either[*T, R], is rejected
// with [ErrInvalidArgument] since it would not decode back.
func (e Either[L, R]) MarshalJSON() ([]byte, error) {
	var (
		key     string
		payload any
	)

	if e.side == sideRight {
		key, payload = keyRight, e.right
	} else {
		key, payload = keyLeft, e.left
	}

	if isAbsent(payload) {
		return nil, fmt.Errorf("marshal %s: %w", key, ErrInvalidArgument)
	}

	data, err := json.Marshal(map[string]any{key: payload})
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", key, err)
	}

	return data, nil
}

// UnmarshalJSON decodes an object holding exactly one of the keys "left" or
// "right". A null payload is rejected with [ErrInvalidArgument].
func (e *Either[L, R]) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage

	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshal object: %w", err)
	}

	if len(obj) != 1 {
		return fmt.Errorf("%w: want exactly one key, got %d", errMalformed, len(obj))
	}

	for key, raw := range obj {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("%s: %w", key, ErrInvalidArgument)
		}

		switch key {
		case keyLeft:
			var v L
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("unmarshal left: %w", err)
			}

			res, err := TryLeft[L, R](v)
			if err != nil {
				return err
			}

			*e = res
		case keyRight:
			var v R
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("unmarshal right: %w", err)
			}

			res, err := TryRight[L](v)
			if err != nil {
				return err
			}

			*e = res
		default:
			return fmt.Errorf("%w: unknown key %q", errMalformed, key)
		}
	}

	return nil
}
