package timefmt

import "golang.org/x/text/language"

type locale struct {
	months      [12]string
	shortMonths [12]string
	days        [7]string // Sunday first
	am, pm      string
	patterns    [numStyles]string
}

// supported and locales are parallel; supported[0] is the fallback.
var (
	supported = []language.Tag{language.English, language.German, language.French, language.Spanish}
	locales   = []*locale{&english, &german, &french, &spanish}
	matcher   = language.NewMatcher(supported)
)

func lookup(tag language.Tag) *locale {
	_, i, _ := matcher.Match(tag)
	return locales[i]
}

var english = locale{
	months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	shortMonths: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	days: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	am:   "AM",
	pm:   "PM",
	patterns: [numStyles]string{
		Full:   "EEEE, MMMM d, y 'at' h:mm:ss a z",
		Long:   "MMMM d, y 'at' h:mm:ss a z",
		Medium: "MMM d, y, h:mm:ss a",
		Short:  "M/d/yy, h:mm a",
	},
}

var german = locale{
	months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
	shortMonths: [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni",
		"Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
	days: [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	am:   "AM",
	pm:   "PM",
	patterns: [numStyles]string{
		Full:   "EEEE, d. MMMM y 'um' HH:mm:ss z",
		Long:   "d. MMMM y 'um' HH:mm:ss z",
		Medium: "dd.MM.y, HH:mm:ss",
		Short:  "dd.MM.yy, HH:mm",
	},
}

var french = locale{
	months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	shortMonths: [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin",
		"juil.", "août", "sept.", "oct.", "nov.", "déc."},
	days: [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	am:   "AM",
	pm:   "PM",
	patterns: [numStyles]string{
		Full:   "EEEE d MMMM y 'à' HH:mm:ss z",
		Long:   "d MMMM y 'à' HH:mm:ss z",
		Medium: "d MMM y, HH:mm:ss",
		Short:  "dd/MM/yy HH:mm",
	},
}

var spanish = locale{
	months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	shortMonths: [12]string{"ene", "feb", "mar", "abr", "may", "jun",
		"jul", "ago", "sept", "oct", "nov", "dic"},
	days: [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	am:   "a. m.",
	pm:   "p. m.",
	patterns: [numStyles]string{
		Full:   "EEEE, d 'de' MMMM 'de' y, H:mm:ss z",
		Long:   "d 'de' MMMM 'de' y, H:mm:ss z",
		Medium: "d MMM y, H:mm:ss",
		Short:  "d/M/yy, H:mm",
	},
}
