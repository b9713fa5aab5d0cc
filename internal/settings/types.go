package settings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mauv0809/dna-dashboard/internal/sheets"
)

// SheetTitle is the title of the key/value sheet holding the game settings.
const SheetTitle = sheets.SettingsSheet

// Header is the column layout of the settings sheet.
var Header = []string{"key", "value", "description"}

// CameraPosition is the initial camera position of the helix scene.
type CameraPosition struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// GameSettings is the full set of tunable parameters consumed by the game client.
type GameSettings struct {
	NumPairs              int            `json:"numPairs" msgpack:"numPairs"`
	HelixRadius           float64        `json:"helixRadius" msgpack:"helixRadius"`
	HelixHeight           float64        `json:"helixHeight" msgpack:"helixHeight"`
	BackboneWidth         float64        `json:"backboneWidth" msgpack:"backboneWidth"`
	Twists                float64        `json:"twists" msgpack:"twists"`
	WhitelistedPairs      []int          `json:"whitelistedPairs" msgpack:"whitelistedPairs"`
	GameTime              int            `json:"gameTime" msgpack:"gameTime"`
	BlinkCount            int            `json:"blinkCount" msgpack:"blinkCount"`
	BlinkInterval         int            `json:"blinkInterval" msgpack:"blinkInterval"`
	TargetPairCount       int            `json:"targetPairCount" msgpack:"targetPairCount"`
	MaxSelections         int            `json:"maxSelections" msgpack:"maxSelections"`
	MaxAttempts           int            `json:"maxAttempts" msgpack:"maxAttempts"`
	WinScreenTimer        int            `json:"winScreenTimer" msgpack:"winScreenTimer"`
	DefaultCameraPosition CameraPosition `json:"defaultCameraPosition" msgpack:"defaultCameraPosition"`
	RotationSpeed         float64        `json:"rotationSpeed" msgpack:"rotationSpeed"`
	Spin                  bool           `json:"spin" msgpack:"spin"`
	SpinSpeed             float64        `json:"spinSpeed" msgpack:"spinSpeed"`
	WinTimeout            int            `json:"winTimeout" msgpack:"winTimeout"`
	LostTimeout           int            `json:"lostTimeout" msgpack:"lostTimeout"`
	BackgroundImage       string         `json:"backgroundImage" msgpack:"backgroundImage"`
	IntroVideo            string         `json:"introVideo" msgpack:"introVideo"`
	WinVideo              string         `json:"winVideo" msgpack:"winVideo"`
	TextureImage          string         `json:"textureImage" msgpack:"textureImage"`
	MatchRatioThreshold   float64        `json:"matchRatioThreshold" msgpack:"matchRatioThreshold"`
}

// Defaults returns a fresh copy of the default settings.
func Defaults() GameSettings {
	return GameSettings{
		NumPairs:              21,
		HelixRadius:           7.5,
		HelixHeight:           38,
		BackboneWidth:         0.6,
		Twists:                1,
		WhitelistedPairs:      []int{0, 1, 2, 7, 8, 9, 10, 11, 12, 13, 18, 19, 20},
		GameTime:              30,
		BlinkCount:            14,
		BlinkInterval:         500,
		TargetPairCount:       3,
		MaxSelections:         3,
		MaxAttempts:           3,
		WinScreenTimer:        11000,
		DefaultCameraPosition: CameraPosition{X: 0, Y: 0, Z: 40},
		RotationSpeed:         0.001,
		Spin:                  true,
		SpinSpeed:             0.002,
		WinTimeout:            3000,
		LostTimeout:           3000,
		MatchRatioThreshold:   1,
	}
}

// Patch is a partial settings object keyed by the JSON field names.
type Patch map[string]json.RawMessage

// ValidationError reports patch keys that are unknown or carry a value of the wrong type.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid settings: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}
