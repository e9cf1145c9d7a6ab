package view

import "html/template"

// Theme carries the per-service look of every rendered page.
type Theme struct {
	// Name is the document <title>.
	Name  string
	Fonts template.URL

	Background    template.CSS
	Surface       template.CSS
	Primary       template.CSS
	TextPrimary   template.CSS
	TextSecondary template.CSS
	SurfaceDarker template.CSS
	MaxWidth      template.CSS
	Glow          template.CSS
	HeadingShadow template.CSS

	// MessageClass names the CSS class of the message paragraph and
	// MessageStyle holds its declarations.
	MessageClass string
	MessageStyle template.CSS
}

var CoachTheme = Theme{
	Name:          "Coach Command Center",
	Fonts:         "https://fonts.googleapis.com/css2?family=Caveat:wght@500&family=Exo+2:wght@700&family=IBM+Plex+Sans:wght@400;500&display=swap",
	Background:    "#111827",
	Surface:       "#1F2937",
	Primary:       "#38BDF8",
	TextPrimary:   "#E5E7EB",
	TextSecondary: "#9CA3AF",
	SurfaceDarker: "#374151",
	MaxWidth:      "800px",
	Glow:          "0 0 30px rgba(56, 189, 248, 0.3)",
	HeadingShadow: "0 0 10px rgba(56, 189, 248, 0.5)",
	MessageClass:  "coach-msg",
	MessageStyle:  "font-family: 'Caveat', cursive; font-size: 1.7em; margin-bottom: 25px; border-left: 3px solid var(--primary); padding-left: 15px;",
}

var PlayerTheme = Theme{
	Name:          "Player Dashboard",
	Fonts:         "https://fonts.googleapis.com/css2?family=Exo+2:wght@700&family=IBM+Plex+Sans:wght@400;500&display=swap",
	Background:    "#1E1B26",
	Surface:       "#2A2438",
	Primary:       "#A78BFA",
	TextPrimary:   "#F5F5F5",
	TextSecondary: "#A3A3A3",
	SurfaceDarker: "#3D3652",
	MaxWidth:      "900px",
	Glow:          "0 0 35px rgba(167, 139, 250, 0.2)",
	HeadingShadow: "none",
	MessageClass:  "player-msg",
	MessageStyle:  "font-size: 1.3em; margin-bottom: 30px;",
}
