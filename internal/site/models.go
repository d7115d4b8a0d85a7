package site

import "encoding/json"

// Meta is the public document the frontend boots from: the site_config
// singleton merged with the streamer record. The captcha secret never
// leaves the server.
type Meta struct {
	SiteName            string          `json:"siteName"`
	SiteSubtitle        string          `json:"siteSubtitle"`
	DefaultPlaylistName string          `json:"defaultPlaylistName"`
	AvatarURL           string          `json:"avatarUrl"`
	BackgroundURL       string          `json:"backgroundUrl"`
	ThemeConfig         json.RawMessage `json:"themeConfig"`
	SEOKeywords         string          `json:"seoKeywords"`
	SEODescription      string          `json:"seoDescription"`
	CustomCSS           string          `json:"customCss"`
	CustomJS            string          `json:"customJs"`
	HiddenTitle         string          `json:"hiddenTitle"`
	CopyMode            string          `json:"copyMode"`
	HCaptchaEnabled     bool            `json:"hcaptchaEnabled"`
	HCaptchaSiteKey     string          `json:"hcaptchaSiteKey"`
	Streamer            *Streamer       `json:"streamer"`
}

type Streamer struct {
	Name        string `json:"name"`
	BilibiliURL string `json:"bilibiliUrl"`
}

// configPayload is the full-replace update body for the singleton. Copy mode
// controls what a visitor's clipboard receives when they copy a song title.
type configPayload struct {
	SiteName            string          `json:"siteName"`
	SiteSubtitle        string          `json:"siteSubtitle"`
	DefaultPlaylistName string          `json:"defaultPlaylistName"`
	AvatarURL           string          `json:"avatarUrl"`
	BackgroundURL       string          `json:"backgroundUrl"`
	ThemeConfig         json.RawMessage `json:"themeConfig"`
	SEOKeywords         string          `json:"seoKeywords"`
	SEODescription      string          `json:"seoDescription"`
	CustomCSS           string          `json:"customCss"`
	CustomJS            string          `json:"customJs"`
	HiddenTitle         string          `json:"hiddenTitle"`
	CopyMode            string          `json:"copyMode"`
	HCaptchaEnabled     bool            `json:"hcaptchaEnabled"`
	HCaptchaSiteKey     string          `json:"hcaptchaSiteKey"`
	HCaptchaSecretKey   string          `json:"hcaptchaSecretKey"`
}

const (
	copyModeNormal      = "normal"
	copyModeSongRequest = "song-request"
)
