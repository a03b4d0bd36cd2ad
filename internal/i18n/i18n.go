// Package i18n resolves the UI locale and looks up display strings.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/garnizeh/ideabridge/pkg/models"
)

type Locale string

const (
	Korean  Locale = "ko"
	English Locale = "en"

	Default = Korean
)

// Supported lists the locales in matcher preference order.
var Supported = []Locale{Korean, English}

//go:embed translations/*.json
var translationFS embed.FS

var (
	loadOnce     sync.Once
	dictionaries map[Locale]map[string]any
	loadErr      error
	matcher      = language.NewMatcher([]language.Tag{language.Korean, language.English})
)

func load() {
	dictionaries = make(map[Locale]map[string]any, len(Supported))
	for _, loc := range Supported {
		b, err := translationFS.ReadFile("translations/" + string(loc) + ".json")
		if err != nil {
			loadErr = fmt.Errorf("read %s translations: %w", loc, err)
			return
		}
		var d map[string]any
		if err := json.Unmarshal(b, &d); err != nil {
			loadErr = fmt.Errorf("parse %s translations: %w", loc, err)
			return
		}
		dictionaries[loc] = d
	}
}

func dictionary(loc Locale) map[string]any {
	loadOnce.Do(load)
	if loadErr != nil {
		panic(loadErr)
	}
	if d, ok := dictionaries[loc]; ok {
		return d
	}
	return dictionaries[Default]
}

// Parse accepts a supported locale code.
func Parse(s string) (Locale, bool) {
	loc := Locale(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range Supported {
		if l == loc {
			return l, true
		}
	}
	return "", false
}

// Resolve picks the stored locale when it is supported, otherwise the best
// match for an Accept-Language header, otherwise Default.
func Resolve(stored, acceptLanguage string) Locale {
	if loc, ok := Parse(stored); ok {
		return loc
	}
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// T looks up a dotted path such as "problems.status.open". A missing path,
// or one that ends on a non-string, yields the path itself.
func T(loc Locale, path string) string {
	var v any = dictionary(loc)
	for _, key := range strings.Split(path, ".") {
		m, ok := v.(map[string]any)
		if !ok {
			return path
		}
		if v, ok = m[key]; !ok {
			return path
		}
	}
	if s, ok := v.(string); ok {
		return s
	}
	return path
}

var dateLayouts = map[Locale]string{
	Korean:  "2006년 1월 2일",
	English: "January 2, 2006",
}

// FormatDate renders t as a long date. The zero time renders as "".
func FormatDate(loc Locale, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	layout, ok := dateLayouts[loc]
	if !ok {
		layout = dateLayouts[Default]
	}
	return t.Format(layout)
}

var problemStatusKeys = map[models.ProblemStatus]string{
	models.ProblemOpen:       "problems.status.open",
	models.ProblemInProgress: "problems.status.inProgress",
	models.ProblemCompleted:  "problems.status.completed",
	models.ProblemClosed:     "problems.status.closed",
}

// Label helpers fall back to the raw value for anything unknown.

func ProblemStatusLabel(loc Locale, s models.ProblemStatus) string {
	if key, ok := problemStatusKeys[s]; ok {
		return T(loc, key)
	}
	return string(s)
}

func UrgencyLabel(loc Locale, u models.Urgency) string {
	if !u.Valid() {
		return string(u)
	}
	return T(loc, "problems.urgency."+string(u))
}

func SolutionStatusLabel(loc Locale, s models.SolutionStatus) string {
	if !s.Valid() {
		return string(s)
	}
	return T(loc, "solutions.status."+string(s))
}

func RoleLabel(loc Locale, r models.Role) string {
	if !r.Valid() {
		return string(r)
	}
	return T(loc, "roles."+string(r))
}

func CategoryLabel(loc Locale, c string) string {
	if !models.IsCategory(c) {
		return c
	}
	return T(loc, "problems.new.categories."+c)
}
