package formula

import "golang.org/x/text/language"

// commaLangs are the languages that conventionally write a decimal comma.
var commaLangs = func() map[language.Base]bool {
	m := make(map[language.Base]bool)
	for _, s := range []string{
		"af", "az", "be", "bg", "bs", "ca", "cs", "da", "de", "el", "es", "et",
		"eu", "fi", "fr", "gl", "hr", "hu", "hy", "id", "is", "it", "ka", "kk",
		"ky", "lt", "lv", "mk", "mn", "nb", "nl", "nn", "no", "pl", "pt", "ro",
		"ru", "sk", "sl", "sq", "sr", "sv", "tr", "uk", "uz", "vi",
	} {
		m[language.MustParseBase(s)] = true
	}
	return m
}()

// pointRegions are regional exceptions to commaLangs.
var pointRegions = func() map[language.Base]map[language.Region]bool {
	m := make(map[language.Base]map[language.Region]bool)
	for _, s := range []string{"de-CH", "de-LI", "it-CH", "es-MX", "es-US", "es-PR"} {
		t := language.MustParse(s)
		b, _ := t.Base()
		r, _ := t.Region()
		if m[b] == nil {
			m[b] = make(map[language.Region]bool)
		}
		m[b][r] = true
	}
	return m
}()

// DecimalSeparator returns the decimal separator, '.' or ',', that is
// conventional for loc. Unknown and undetermined locales use '.'.
func DecimalSeparator(loc language.Tag) byte {
	b, conf := loc.Base()
	if conf == language.No || !commaLangs[b] {
		return '.'
	}
	// Only an explicit region can override the language.
	if r, conf := loc.Region(); conf == language.Exact && pointRegions[b][r] {
		return '.'
	}
	return ','
}
