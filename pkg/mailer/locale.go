package mailer

// deriveLocale extracts the recipient's locale from render locals: the
// user's last-locale field takes precedence, then the top-level "locale"
// key. Returns "" when neither is present, which selects the default
// template variant downstream.
func deriveLocale(locals map[string]any, lastLocaleField string) string {
	if user, ok := locals["user"].(map[string]any); ok {
		if locale, ok := user[lastLocaleField].(string); ok && locale != "" {
			return locale
		}
	}

	if locale, ok := locals["locale"].(string); ok {
		return locale
	}

	return ""
}
