package respond

import "strings"

const (
	greetingText = "שלום! 👋 אני הצ'אט החכם של המערכת. אני יכול לעזור לך למצוא מידע מהר!\n\nנסה לשאול:\n• \"כמה לקוחות יש?\"\n• \"כמה שעות עבדתי היום?\"\n• \"מה ההכנסות החודש?\"\n• \"יש משימות באיחור?\"\n• \"פגישות השבוע?\""
	thanksText   = "בכיף! תמיד פה לעזור 😊"
	helpText     = "אני יכול לעזור לך עם:\n\n✅ חיפוש לקוחות ופרויקטים\n✅ סיכומי זמנים והכנסות\n✅ משימות ופגישות\n✅ הצעות מחיר וחשבוניות\n✅ סטטיסטיקות ודוחות\n\nפשוט שאל מה שבא לך!"
	unknownText  = "לא בטוח שהבנתי 🤔\n\nנסה לשאול משהו אחר, למשל:\n• \"כמה לקוחות יש?\"\n• \"מה ההכנסות החודש?\"\n• \"יש משימות באיחור?\""
)

// Short greetings match whole words only ("הי" is a prefix of "היום").
var greetingWords = map[string]struct{}{
	"הי": {}, "היי": {}, "hi": {}, "hey": {}, "hello": {},
}

func (r *Responder) General(query string) string {
	q := strings.ToLower(query)

	switch {
	case isGreeting(q):
		return greetingText
	case containsAny(q, "תודה", "thanks", "thank you"):
		return thanksText
	case containsAny(q, "עזרה", "מה אתה יכול", "help"):
		return helpText
	}
	return unknownText
}

func isGreeting(q string) bool {
	if strings.Contains(q, "שלום") {
		return true
	}
	for _, w := range strings.Fields(q) {
		if _, ok := greetingWords[strings.Trim(w, "?!,.")]; ok {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
