package recurring

import "strings"

// boilerplateTokens are bank-statement noise stripped before deriving a
// candidate name.
var boilerplateTokens = []string{
	"AUTOPAY",
	"RECURRING",
	"SUBSCRIPTION",
	"BILL PAY",
	"BILLPAY",
	"ACH",
	"WEB PMT",
	"PAYMENT",
}

// maxNameWords caps how many words of the cleaned payee make it into the
// candidate name.
const maxNameWords = 3

// deriveName turns a raw payee string into a presentable candidate name:
// strip boilerplate, title-case the first few remaining words.
func deriveName(payee string) string {
	cleaned := strings.ToUpper(payee)
	for _, tok := range boilerplateTokens {
		cleaned = strings.ReplaceAll(cleaned, tok, " ")
	}

	words := strings.Fields(cleaned)
	if len(words) > maxNameWords {
		words = words[:maxNameWords]
	}
	if len(words) == 0 {
		return strings.TrimSpace(payee)
	}

	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

// titleCase uppercases the first rune and lowercases the rest. Good enough
// for merchant names; strings.Title is deprecated and locale handling is not
// worth it here.
func titleCase(w string) string {
	if w == "" {
		return w
	}
	lower := strings.ToLower(w)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// suggestCategory looks the payee up against the domain's keyword table.
// First matching keyword wins, in the table's declared order.
func suggestCategory(payee string, cfg DomainConfig) string {
	lower := strings.ToLower(payee)
	for _, keyword := range cfg.CategoryOrder {
		if strings.Contains(lower, keyword) {
			return cfg.CategoryKeywords[keyword]
		}
	}
	return "other"
}

// billKeywords maps payee substrings to bill categories.
var billKeywords = map[string]string{
	"electric":   "utilities",
	"gas":        "utilities",
	"water":      "utilities",
	"pg&e":       "utilities",
	"energy":     "utilities",
	"utility":    "utilities",
	"rent":       "housing",
	"mortgage":   "housing",
	"apartment":  "housing",
	"property":   "housing",
	"insurance":  "insurance",
	"geico":      "insurance",
	"allstate":   "insurance",
	"internet":   "communication",
	"comcast":    "communication",
	"wireless":   "communication",
	"mobile":     "communication",
	"phone":      "communication",
	"medical":    "healthcare",
	"dental":     "healthcare",
	"health":     "healthcare",
	"pharmacy":   "healthcare",
	"loan":       "personal/credit",
	"credit":     "personal/credit",
	"card pmt":   "personal/credit",
	"auto":       "transportation",
	"car":        "transportation",
	"transit":    "transportation",
	"parking":    "transportation",
	"tuition":    "education",
	"university": "education",
	"school":     "education",
}

var billKeywordOrder = []string{
	"pg&e", "electric", "gas", "water", "energy", "utility",
	"rent", "mortgage", "apartment", "property",
	"insurance", "geico", "allstate",
	"internet", "comcast", "wireless", "mobile", "phone",
	"medical", "dental", "health", "pharmacy",
	"loan", "credit", "card pmt",
	"auto", "car", "transit", "parking",
	"tuition", "university", "school",
}

// subscriptionKeywords maps payee substrings to subscription categories.
var subscriptionKeywords = map[string]string{
	"netflix":     "entertainment",
	"hulu":        "entertainment",
	"disney":      "entertainment",
	"hbo":         "entertainment",
	"youtube":     "entertainment",
	"paramount":   "entertainment",
	"crunchyroll": "entertainment",
	"spotify":     "music",
	"pandora":     "music",
	"tidal":       "music",
	"apple music": "music",
	"amazon":      "shopping",
	"prime":       "shopping",
	"costco":      "shopping",
	"adobe":       "software",
	"microsoft":   "software",
	"github":      "software",
	"dropbox":     "software",
	"icloud":      "software",
	"google":      "software",
	"notion":      "software",
}

var subscriptionKeywordOrder = []string{
	"netflix", "hulu", "disney", "hbo", "youtube", "paramount", "crunchyroll",
	"spotify", "pandora", "tidal", "apple music",
	"prime", "amazon", "costco",
	"adobe", "microsoft", "github", "dropbox", "icloud", "google", "notion",
}
