package collector

import "time"

// SessionLog is one session start report
type SessionLog struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	CreatedAt    time.Time  `json:"timestamp" gorm:"index"`
	IP           string     `json:"ip" gorm:"size:64"`
	UserAgent    string     `json:"userAgent"`
	Referrer     string     `json:"referrer"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	ScreenWidth  int        `json:"screenWidth"`
	ScreenHeight int        `json:"screenHeight"`
	IPLocation   IPLocation `json:"ipLocation" gorm:"embedded;embeddedPrefix:ip_"`
}

// LocationLog is one reported position fix
type LocationLog struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"timestamp" gorm:"index"`
	IP        string    `json:"ip" gorm:"size:64"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
}
