package matchpepe

import "github.com/vovakirdan/sky-arcade/internal/core"

// Tile is one face a board cell can show.
type Tile struct {
	Glyph rune
	Color core.Color
}

// Tiles is the full set rounds draw from. Glyphs are single-width so
// every terminal lays the board out the same way.
var Tiles = [...]Tile{
	{'A', core.MustHex("#e74c3c")},
	{'B', core.MustHex("#3498db")},
	{'C', core.MustHex("#2ecc71")},
	{'D', core.MustHex("#9b59b6")},
	{'E', core.MustHex("#f39c12")},
	{'F', core.MustHex("#1abc9c")},
	{'G', core.MustHex("#d35400")},
	{'H', core.MustHex("#34495e")},
	{'I', core.MustHex("#e84393")},
	{'J', core.MustHex("#00cec9")},
	{'K', core.MustHex("#6c5ce7")},
	{'L', core.MustHex("#fdcb6e")},
	{'M', core.MustHex("#b33939")},
	{'N', core.MustHex("#218c74")},
	{'O', core.MustHex("#cd6133")},
	{'P', core.MustHex("#706fd3")},
	{'Q', core.MustHex("#40407a")},
	{'R', core.MustHex("#ff5252")},
	{'S', core.MustHex("#33d9b2")},
	{'T', core.MustHex("#ffb142")},
	{'U', core.MustHex("#227093")},
	{'V', core.MustHex("#84817a")},
	{'W', core.MustHex("#cc8e35")},
	{'X', core.MustHex("#2c2c54")},
	{'Y', core.MustHex("#ff793f")},
	{'Z', core.MustHex("#474787")},
	{'#', core.MustHex("#aaa69d")},
	{'@', core.MustHex("#b8e994")},
	{'%', core.MustHex("#f8a5c2")},
	{'&', core.MustHex("#63cdda")},
}
