// Package config loads the renderer settings, the profile card data and the
// color scheme tables. Settings layer embedded defaults, an optional TOML
// file and BOOTGIF_* environment overrides into one explicit struct that is
// passed to the canvas constructor; nothing reads configuration from global
// state after startup.
package config

// Settings is the full renderer configuration.
type Settings struct {
	General GeneralSettings `koanf:"general"`
	Canvas  CanvasSettings  `koanf:"canvas"`
	Fonts   FontSettings    `koanf:"fonts"`
	Files   FileSettings    `koanf:"files"`
	Cache   CacheSettings   `koanf:"cache"`
}

// GeneralSettings controls cursor behavior, identity and pacing.
type GeneralSettings struct {
	Debug       bool   `koanf:"debug"`
	Cursor      string `koanf:"cursor"`
	ShowCursor  bool   `koanf:"show_cursor"`
	BlinkCursor bool   `koanf:"blink_cursor"`
	UserName    string `koanf:"user_name"`
	ColorScheme string `koanf:"color_scheme"`
	FPS         int    `koanf:"fps"`
}

// CanvasSettings sets the pixel geometry of rendered frames.
type CanvasSettings struct {
	Width  int `koanf:"width"`
	Height int `koanf:"height"`
	XPad   int `koanf:"xpad"`
	YPad   int `koanf:"ypad"`
}

// FontSettings points at optional TTF files. Empty paths select the built-in
// bitmap face.
type FontSettings struct {
	TerminalFile string  `koanf:"terminal_file"`
	TerminalSize float64 `koanf:"terminal_size"`
	LogoFile     string  `koanf:"logo_file"`
	LogoSize     float64 `koanf:"logo_size"`
}

// FileSettings names every filesystem artifact the pipeline touches.
type FileSettings struct {
	FrameBaseName   string `koanf:"frame_base_name"`
	FrameFolderName string `koanf:"frame_folder_name"`
	OutputGifName   string `koanf:"output_gif_name"`
	ReadmeName      string `koanf:"readme_name"`
	AvatarFile      string `koanf:"avatar_file"`
	ColorsFile      string `koanf:"colors_file"`
	ProfileFile     string `koanf:"profile_file"`
	CacheFile       string `koanf:"cache_file"`
}

// CacheSettings controls the fetched-stats cache.
type CacheSettings struct {
	Enabled  bool `koanf:"enabled"`
	TTLHours int  `koanf:"ttl_hours"`
}

// OutputGif returns the output artifact filename with extension.
func (f FileSettings) OutputGif() string {
	return f.OutputGifName + ".gif"
}

// Profile is the personal data interpolated into the boot script and the
// fetch card.
type Profile struct {
	DisplayName string   `yaml:"display_name"`
	HostName    string   `yaml:"host_name"`
	OS          string   `yaml:"os"`
	Role        string   `yaml:"role"`
	Location    string   `yaml:"location"`
	Timezone    string   `yaml:"timezone"`
	IDE         string   `yaml:"ide"`
	Birthday    Birthday `yaml:"birthday"`
	IgnoreRepos []string `yaml:"ignore_repos"`
}

// Birthday feeds the uptime line on the fetch card.
type Birthday struct {
	Day   int `yaml:"day"`
	Month int `yaml:"month"`
	Year  int `yaml:"year"`
}
