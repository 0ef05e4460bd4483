// Package i18n localizes twinec's own CLI messages.
//
// It wraps gotext with T() and N() helpers; translations are embedded
// in the binary under locales/{lang}/LC_MESSAGES/twinec.po and loaded
// once at startup via Init(). A translation compiler ought to speak
// the user's language itself.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// locales embeds the compiled .po translation files.
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for twinec.
const domain = "twinec"

// po is the gotext locale used for translations; nil until Init runs.
var po *gotext.Locale

// Init loads translations for lang, auto-detecting from the
// environment (LANGUAGE, LC_ALL, LC_MESSAGES, LANG, in GNU gettext
// priority order) when lang is empty. Call once before T or N.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a message, returning it unchanged when no translation
// exists (gettext passthrough).
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with plural forms; the target language's
// plural formula picks the form for n.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage determines the user's preferred language from the
// environment, following GNU gettext conventions.
func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if val == "" {
			continue
		}
		// LANGUAGE may be a colon-separated preference list.
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		// Strip the encoding suffix ("fr_FR.UTF-8" -> "fr_FR").
		val, _, _ = strings.Cut(val, ".")
		// "C" and "POSIX" mean untranslated output.
		if val == "" || val == "C" || val == "POSIX" {
			continue
		}
		return val
	}
	return "en"
}
