package command

// Remote control command codes, grouped by button row.
const (
	BrightnessUp   = 0x5C
	BrightnessDown = 0x5D
	ToggleRun      = 0x41
	Secondary      = 0x40

	PaletteRed            = 0x58
	PaletteGreen          = 0x59
	PaletteBlue           = 0x45
	PaletteWhite          = 0x44
	PaletteOrange         = 0x54
	PaletteLawnGreen      = 0x55
	PaletteAqua           = 0x49
	PaletteDeepPink       = 0x48
	PaletteGold           = 0x50
	PaletteCyan           = 0x51
	PaletteDarkViolet     = 0x4D
	PaletteCoral          = 0x4C
	PaletteDarkGoldenrod  = 0x1C
	PaletteDarkCyan       = 0x1D
	PaletteMagenta        = 0x1E
	PalettePowderBlue     = 0x1F
	PaletteYellow         = 0x18
	PaletteDarkTurquoise  = 0x19
	PaletteDeepPink2      = 0x1A
	PaletteLightSteelBlue = 0x1B

	RedUp     = 0x14
	GreenUp   = 0x15
	BlueUp    = 0x16
	RedDown   = 0x10
	GreenDown = 0x11
	BlueDown  = 0x12

	// Quick lowers the vibration threshold, or with the modifier shortens
	// the frame delay.
	Quick = 0x17
	// Slow raises the vibration threshold, or with the modifier lengthens
	// the frame delay.
	Slow = 0x13

	Ripple           = 0x0C // DIY1
	PushMulticolor   = 0x0D // DIY2
	PushPreset       = 0x0E // DIY3
	Save             = 0x0F // AUTO
	Wheel            = 0x08 // DIY4
	ToggleMulticolor = 0x09 // DIY5
	PreviewPreset    = 0x0A // DIY6
	Flash            = 0x0B
	Rainbow          = 0x04 // JUMP3
	Jump7            = 0x05
	Fade3            = 0x06
	Fade7            = 0x07
)
