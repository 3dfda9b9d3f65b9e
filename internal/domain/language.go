package domain

// Language identifies a display language for menus and SMS copy.
type Language string

const (
	LangKinyarwanda Language = "rw"
	LangEnglish     Language = "en"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LangKinyarwanda || l == LangEnglish
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == LangKinyarwanda {
		return LangEnglish
	}
	return LangKinyarwanda
}
