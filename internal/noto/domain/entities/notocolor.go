package entities

// NotoColor - цвет библиотеки.
type NotoColor string

const (
	NotoColorGray       NotoColor = "Gray"
	NotoColorBlue       NotoColor = "Blue"
	NotoColorPink       NotoColor = "Pink"
	NotoColorCyan       NotoColor = "Cyan"
	NotoColorPurple     NotoColor = "Purple"
	NotoColorRed        NotoColor = "Red"
	NotoColorYellow     NotoColor = "Yellow"
	NotoColorOrange     NotoColor = "Orange"
	NotoColorGreen      NotoColor = "Green"
	NotoColorBrown      NotoColor = "Brown"
	NotoColorBlueGray   NotoColor = "BlueGray"
	NotoColorTeal       NotoColor = "Teal"
	NotoColorIndigo     NotoColor = "Indigo"
	NotoColorDeepPurple NotoColor = "DeepPurple"
	NotoColorDeepOrange NotoColor = "DeepOrange"
	NotoColorDeepGreen  NotoColor = "DeepGreen"
	NotoColorLightBlue  NotoColor = "LightBlue"
	NotoColorLightGreen NotoColor = "LightGreen"
	NotoColorLightRed   NotoColor = "LightRed"
	NotoColorLightPink  NotoColor = "LightPink"
	NotoColorBlack      NotoColor = "Black"
)

// NotoColors перечисляет цвета в порядке отображения.
var NotoColors = []NotoColor{
	NotoColorGray, NotoColorBlue, NotoColorPink, NotoColorCyan, NotoColorPurple,
	NotoColorRed, NotoColorYellow, NotoColorOrange, NotoColorGreen, NotoColorBrown,
	NotoColorBlueGray, NotoColorTeal, NotoColorIndigo, NotoColorDeepPurple,
	NotoColorDeepOrange, NotoColorDeepGreen, NotoColorLightBlue, NotoColorLightGreen,
	NotoColorLightRed, NotoColorLightPink, NotoColorBlack,
}

func ParseNotoColor(s string) (NotoColor, bool) { return parseEnum(s, NotoColors) }
