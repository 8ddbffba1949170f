package telemetry

// Endpoint paths on the collector
const (
	LogPath      = "/api/log"
	LocationPath = "/api/log-location"
)

// ScreenSize describes the host display at session start
type ScreenSize struct {
	Width        int `json:"width"`        // Viewport width
	Height       int `json:"height"`       // Viewport height
	ScreenWidth  int `json:"screenWidth"`  // Physical screen width
	ScreenHeight int `json:"screenHeight"` // Physical screen height
}

// SessionReport is posted once when a session starts
type SessionReport struct {
	ScreenSize ScreenSize `json:"screenSize"`
}

// Location is a position fix with accuracy in meters
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
}
