package judge

// Language is an entry of the fixed table of languages the external
// judge accepts, keyed by the canonical name used at the service
// boundary.
type Language struct {
	Name    string // canonical name, e.g. "c++"
	JudgeID int    // judge-internal language identifier
	Display string // user-friendly name
}

// getHardcodedLanguageList returns the languages the judge supports.
// The frontend "cpp" alias is not in this table; callers normalize it
// to "c++" at the API edge before reaching this package.
func getHardcodedLanguageList() []Language {
	return []Language{
		{
			Name:    "c++",
			JudgeID: 54,
			Display: "C++ (GCC 9.2.0)",
		},
		{
			Name:    "java",
			JudgeID: 62,
			Display: "Java (OpenJDK 13.0.1)",
		},
		{
			Name:    "javascript",
			JudgeID: 63,
			Display: "JavaScript (Node.js 12.14.0)",
		},
	}
}

// Languages returns all supported languages.
func Languages() []Language {
	return getHardcodedLanguageList()
}

// LanguageID maps a canonical language name to the judge's internal
// identifier.
func LanguageID(name string) (int, error) {
	for _, lang := range getHardcodedLanguageList() {
		if lang.Name == name {
			return lang.JudgeID, nil
		}
	}
	return 0, ErrUnsupportedLanguage(name)
}
