package dto

// Preferences is the wire form of GET/PUT /api/preferences.
type Preferences struct {
	StartHour     int    `json:"startHour"`
	EndHour       int    `json:"endHour"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
}

// PreferencesPatch is the PUT /api/preferences body. Fields left out of the
// body keep their stored value.
type PreferencesPatch struct {
	StartHour     *int    `json:"startHour,omitempty"`
	EndHour       *int    `json:"endHour,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	Theme         *string `json:"theme,omitempty"`
}
