package catalog

// Icon names a topic glyph. Only the constants below are known to the
// registry; anything else renders as FallbackGlyph.
type Icon string

const (
	IconLayers   Icon = "Layers"
	IconCPU      Icon = "Cpu"
	IconBrain    Icon = "Brain"
	IconDatabase Icon = "Database"
	IconKey      Icon = "Key"
	IconBox      Icon = "Box"
	IconZap      Icon = "Zap"
	IconInbox    Icon = "Inbox"
	IconShield   Icon = "Shield"
	IconGlobe    Icon = "Globe"
	IconImage    Icon = "Image"
	IconVideo    Icon = "Video"
	IconGitMerge Icon = "GitMerge"
	IconLock     Icon = "Lock"
)

// FallbackGlyph is shown for icons missing from the registry.
const FallbackGlyph = "◆"

var glyphs = map[Icon]string{
	IconLayers:   "▤",
	IconCPU:      "⚙",
	IconBrain:    "✺",
	IconDatabase: "⛁",
	IconKey:      "⚿",
	IconBox:      "▣",
	IconZap:      "ϟ",
	IconInbox:    "⇲",
	IconShield:   "⛨",
	IconGlobe:    "◍",
	IconImage:    "▧",
	IconVideo:    "▶",
	IconGitMerge: "⑂",
	IconLock:     "⊡",
}

// Glyph returns the terminal glyph for the icon.
func (i Icon) Glyph() string {
	if g, ok := glyphs[i]; ok {
		return g
	}
	return FallbackGlyph
}

// Known reports whether the icon is in the registry.
func (i Icon) Known() bool {
	_, ok := glyphs[i]
	return ok
}
