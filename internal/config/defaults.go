package config

import (
	_ "embed"
)

//go:embed defaults/bootgif.toml
var defaultSettingsTOML []byte

//go:embed defaults/profile.yml
var defaultProfileYAML []byte

// DefaultSettings returns the settings used when no file or environment
// override is present.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			Cursor:      "_",
			ShowCursor:  true,
			BlinkCursor: true,
			UserName:    "Fynn9563",
			ColorScheme: "yoru",
			FPS:         15,
		},
		Canvas: CanvasSettings{
			Width:  750,
			Height: 500,
			XPad:   15,
			YPad:   15,
		},
		Fonts: FontSettings{
			TerminalSize: 15,
			LogoSize:     66,
		},
		Files: FileSettings{
			FrameBaseName:   "frame_",
			FrameFolderName: "frames",
			OutputGifName:   "output",
			ReadmeName:      "README.md",
			AvatarFile:      "icon.png",
			ColorsFile:      "colors.toml",
			ProfileFile:     "profile.yml",
			CacheFile:       "stats.db",
		},
		Cache: CacheSettings{
			Enabled:  true,
			TTLHours: 24,
		},
	}
}

// DefaultProfile returns the profile used when no profile file exists.
func DefaultProfile() Profile {
	return Profile{
		DisplayName: "fynn",
		HostName:    "fynn-os",
		OS:          "Arch Linux x86_64",
		Role:        "DevOps & Cloud Engineer",
		Location:    "Somewhere in the cloud",
		Timezone:    "Australia/Melbourne",
		IDE:         "neovim, VSCode",
		Birthday:    Birthday{Day: 10, Month: 11, Year: 1992},
	}
}
