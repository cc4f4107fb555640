package resume2pdf

// stringTable holds the localized labels used by the HTML synthesizer.
type stringTable struct {
	ProfessionalSummary string
	Experience          string
	Education           string
	Skills              string
	References          string
	KeyAchievements     string
	Position            string
	Company             string
	StartDate           string
	EndDate             string
	Institution         string
	YourName            string
	YourJobTitle        string
	At                  string
	In                  string
}

// DefaultLanguage is used when a language code is unrecognized.
const DefaultLanguage = "en"

// locales is the fixed language table. Read-only after init; safe to share
// across concurrent renders.
var locales = map[string]stringTable{
	"en": {
		ProfessionalSummary: "PROFESSIONAL SUMMARY",
		Experience:          "EXPERIENCE",
		Education:           "EDUCATION",
		Skills:              "SKILLS",
		References:          "REFERENCES",
		KeyAchievements:     "Key Achievements:",
		Position:            "Position",
		Company:             "Company",
		StartDate:           "Start Date",
		EndDate:             "End Date",
		Institution:         "Institution",
		YourName:            "Your Name",
		YourJobTitle:        "Your Job Title",
		At:                  "at",
		In:                  "in",
	},
	"fr": {
		ProfessionalSummary: "RÉSUMÉ PROFESSIONNEL",
		Experience:          "EXPÉRIENCE",
		Education:           "FORMATION",
		Skills:              "COMPÉTENCES",
		References:          "RÉFÉRENCES",
		KeyAchievements:     "Réalisations clés :",
		Position:            "Poste",
		Company:             "Entreprise",
		StartDate:           "Date de début",
		EndDate:             "Date de fin",
		Institution:         "Institution",
		YourName:            "Votre nom",
		YourJobTitle:        "Votre titre de poste",
		At:                  "chez",
		In:                  "en",
	},
}

// resolveLanguage returns the string table for a language code along with
// the effective code, falling back to the default language when the code is
// unknown or empty. The effective code is what ends up in the document's
// lang attribute.
func resolveLanguage(language string) (stringTable, string) {
	if t, ok := locales[language]; ok {
		return t, language
	}
	return locales[DefaultLanguage], DefaultLanguage
}

// resolveLocale returns just the string table for a language code.
func resolveLocale(language string) stringTable {
	t, _ := resolveLanguage(language)
	return t
}
