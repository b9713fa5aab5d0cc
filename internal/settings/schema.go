package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// field describes how one settings key is stored as sheet text and decoded from JSON.
type field struct {
	key string
	// format renders the field of s as the text stored in the sheet.
	format func(s *GameSettings) string
	// parse sets the field of s from stored text, leaving s untouched on error.
	parse func(s *GameSettings, text string) error
	// decode sets the field of s from a JSON value.
	decode func(s *GameSettings, raw json.RawMessage) error
}

func newField[T any](key string, ptr func(*GameSettings) *T, format func(T) string, parse func(string) (T, error)) field {
	return field{
		key:    key,
		format: func(s *GameSettings) string { return format(*ptr(s)) },
		parse: func(s *GameSettings, text string) error {
			v, err := parse(text)
			if err != nil {
				return err
			}
			*ptr(s) = v
			return nil
		},
		decode: func(s *GameSettings, raw json.RawMessage) error {
			if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				return errors.New("value must not be null")
			}
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*ptr(s) = v
			return nil
		},
	}
}

func intField(key string, ptr func(*GameSettings) *int) field {
	return newField(key, ptr, strconv.Itoa, parseInt)
}

func floatField(key string, ptr func(*GameSettings) *float64) field {
	return newField(key, ptr, formatFloat, parseFloat)
}

func boolField(key string, ptr func(*GameSettings) *bool) field {
	return newField(key, ptr, strconv.FormatBool, parseBool)
}

func stringField(key string, ptr func(*GameSettings) *string) field {
	return newField(key, ptr, func(v string) string { return v }, func(v string) (string, error) { return v, nil })
}

func jsonField[T any](key string, ptr func(*GameSettings) *T) field {
	return newField(key, ptr, formatJSON[T], parseJSON[T])
}

// schema lists every settings key in the order rows are seeded and appended.
var schema = []field{
	intField("numPairs", func(s *GameSettings) *int { return &s.NumPairs }),
	floatField("helixRadius", func(s *GameSettings) *float64 { return &s.HelixRadius }),
	floatField("helixHeight", func(s *GameSettings) *float64 { return &s.HelixHeight }),
	floatField("backboneWidth", func(s *GameSettings) *float64 { return &s.BackboneWidth }),
	floatField("twists", func(s *GameSettings) *float64 { return &s.Twists }),
	jsonField("whitelistedPairs", func(s *GameSettings) *[]int { return &s.WhitelistedPairs }),
	intField("gameTime", func(s *GameSettings) *int { return &s.GameTime }),
	intField("blinkCount", func(s *GameSettings) *int { return &s.BlinkCount }),
	intField("blinkInterval", func(s *GameSettings) *int { return &s.BlinkInterval }),
	intField("targetPairCount", func(s *GameSettings) *int { return &s.TargetPairCount }),
	intField("maxSelections", func(s *GameSettings) *int { return &s.MaxSelections }),
	intField("maxAttempts", func(s *GameSettings) *int { return &s.MaxAttempts }),
	intField("winScreenTimer", func(s *GameSettings) *int { return &s.WinScreenTimer }),
	jsonField("defaultCameraPosition", func(s *GameSettings) *CameraPosition { return &s.DefaultCameraPosition }),
	floatField("rotationSpeed", func(s *GameSettings) *float64 { return &s.RotationSpeed }),
	boolField("spin", func(s *GameSettings) *bool { return &s.Spin }),
	floatField("spinSpeed", func(s *GameSettings) *float64 { return &s.SpinSpeed }),
	intField("winTimeout", func(s *GameSettings) *int { return &s.WinTimeout }),
	intField("lostTimeout", func(s *GameSettings) *int { return &s.LostTimeout }),
	stringField("backgroundImage", func(s *GameSettings) *string { return &s.BackgroundImage }),
	stringField("introVideo", func(s *GameSettings) *string { return &s.IntroVideo }),
	stringField("winVideo", func(s *GameSettings) *string { return &s.WinVideo }),
	stringField("textureImage", func(s *GameSettings) *string { return &s.TextureImage }),
	floatField("matchRatioThreshold", func(s *GameSettings) *float64 { return &s.MatchRatioThreshold }),
}

var schemaByKey = func() map[string]field {
	m := make(map[string]field, len(schema))
	for _, f := range schema {
		m[f.key] = f
	}
	return m
}()

// Keys returns every known settings key in schema order.
func Keys() []string {
	keys := make([]string, len(schema))
	for i, f := range schema {
		keys[i] = f.key
	}
	return keys
}

// Value renders the named field of s as it is stored in the sheet, or "" for unknown keys.
func Value(s GameSettings, key string) string {
	f, ok := schemaByKey[key]
	if !ok {
		return ""
	}
	return f.format(&s)
}

// defaultRows renders the default settings as sheet rows.
func defaultRows() [][]string {
	defaults := Defaults()
	rows := make([][]string, 0, len(schema))
	for _, f := range schema {
		rows = append(rows, []string{f.key, f.format(&defaults), description(f.key)})
	}
	return rows
}

func description(key string) string {
	return "Setting for " + key
}

// normalize validates a patch against the schema and renders each value as sheet text.
func normalize(patch Patch) (map[string]string, error) {
	verr := &ValidationError{}
	out := make(map[string]string, len(patch))
	for key, raw := range patch {
		f, ok := schemaByKey[key]
		if !ok {
			verr.add("unknown setting %q", key)
			continue
		}
		var scratch GameSettings
		if err := f.decode(&scratch, raw); err != nil {
			verr.add("%s: %v", key, err)
			continue
		}
		out[key] = f.format(&scratch)
	}
	if len(verr.Problems) > 0 {
		return nil, verr
	}
	return out, nil
}

func parseInt(text string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", text)
	}
	return int(f), nil
}

func parseFloat(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", text)
	}
	return f, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseBool treats anything other than "true" as false, matching the game client.
func parseBool(text string) (bool, error) {
	return strings.EqualFold(strings.TrimSpace(text), "true"), nil
}

func formatJSON[T any](v T) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func parseJSON[T any](text string) (T, error) {
	var v T
	err := json.Unmarshal([]byte(text), &v)
	return v, err
}
