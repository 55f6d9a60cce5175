package color

// Named colors at full 8-bit range. Callers scale them with Limit before
// showing them on the strip.
var (
	NamedRed            Triple
	NamedGreen          Triple
	NamedBlue           Triple
	NamedWhite          Triple
	NamedOrange         Triple
	NamedLawnGreen      Triple
	NamedAqua           Triple
	NamedDeepPink       Triple
	NamedGold           Triple
	NamedCyan           Triple
	NamedDarkViolet     Triple
	NamedCoral          Triple
	NamedDarkGoldenrod  Triple
	NamedDarkCyan       Triple
	NamedMagenta        Triple
	NamedPowderBlue     Triple
	NamedYellow         Triple
	NamedDarkTurquoise  Triple
	NamedLightSteelBlue Triple
	NamedIndigo         Triple
	NamedViolet         Triple
)

// Rainbow is the sequence used by Rainbow mode for solid fills and trail seeds.
var Rainbow []Triple

func init() {
	for _, e := range []struct {
		dst *Triple
		hex string
	}{
		{&NamedRed, "#ff0000"},
		{&NamedGreen, "#008000"},
		{&NamedBlue, "#0000ff"},
		{&NamedWhite, "#ffffff"},
		{&NamedOrange, "#ffa500"},
		{&NamedLawnGreen, "#7cfc00"},
		{&NamedAqua, "#00ffff"},
		{&NamedDeepPink, "#ff1493"},
		{&NamedGold, "#ffd700"},
		{&NamedCyan, "#00ffff"},
		{&NamedDarkViolet, "#9400d3"},
		{&NamedCoral, "#ff7f50"},
		{&NamedDarkGoldenrod, "#b8860b"},
		{&NamedDarkCyan, "#008b8b"},
		{&NamedMagenta, "#ff00ff"},
		{&NamedPowderBlue, "#b0e0e6"},
		{&NamedYellow, "#ffff00"},
		{&NamedDarkTurquoise, "#00ced1"},
		{&NamedLightSteelBlue, "#b0c4de"},
		{&NamedIndigo, "#4b0082"},
		{&NamedViolet, "#ee82ee"},
	} {
		c, err := ParseHex(e.hex)
		if err != nil {
			panic(err)
		}
		*e.dst = c
	}

	Rainbow = []Triple{
		NamedRed,
		NamedOrange,
		NamedYellow,
		NamedGreen,
		NamedBlue,
		NamedIndigo,
		NamedViolet,
	}
}
