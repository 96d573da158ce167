package model

// IconName identifies the glyph shown for a mode.
type IconName string

const (
	IconCode      IconName = "Code"
	IconBookOpen  IconName = "BookOpen"
	IconBriefcase IconName = "Briefcase"
	IconHome      IconName = "Home"
	IconDumbbell  IconName = "Dumbbell"
	IconMusic     IconName = "Music"
	IconCoffee    IconName = "Coffee"
	IconStar      IconName = "Star"
)

// DefaultIcon is used for new modes and for unrecognized icon names.
const DefaultIcon = IconStar

// AvailableIcons is the selectable catalog, in display order.
var AvailableIcons = []IconName{
	IconCode,
	IconBookOpen,
	IconBriefcase,
	IconHome,
	IconDumbbell,
	IconMusic,
	IconCoffee,
	IconStar,
}

var iconGlyphs = map[IconName]string{
	IconCode:      "</>",
	IconBookOpen:  "📖",
	IconBriefcase: "💼",
	IconHome:      "⌂",
	IconDumbbell:  "🏋",
	IconMusic:     "♪",
	IconCoffee:    "☕",
	IconStar:      "★",
}

func (i IconName) IsValid() bool {
	_, ok := iconGlyphs[i]
	return ok
}

// Glyph returns the terminal glyph for the icon, falling back to the
// default icon's glyph.
func (i IconName) Glyph() string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[DefaultIcon]
}

// NormalizeIcon maps s onto the catalog. Unknown or empty names become
// DefaultIcon.
func NormalizeIcon(s string) IconName {
	i := IconName(s)
	if i.IsValid() {
		return i
	}
	return DefaultIcon
}
