package alert

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/bitmark-inc/health-metrics-api/schema"
)

const (
	messageIDPrefix    = "alerts."
	customMessageID    = messageIDPrefix + "custom"
	allNormalMessageID = messageIDPrefix + "all_normal"
)

// defaultMessages are the English texts used when a locale lacks a message
var defaultMessages = map[string]*i18n.Message{
	TemperatureHigh: {
		One:   "{{.Count}} reading with elevated temperature (>37.5°C)",
		Other: "{{.Count}} readings with elevated temperature (>37.5°C)",
	},
	TemperatureLow: {
		One:   "{{.Count}} reading with low temperature (<36.0°C)",
		Other: "{{.Count}} readings with low temperature (<36.0°C)",
	},
	HeartRateHigh: {
		One:   "{{.Count}} reading with high heart rate (>100 bpm)",
		Other: "{{.Count}} readings with high heart rate (>100 bpm)",
	},
	HeartRateLow: {
		One:   "{{.Count}} reading with low heart rate (<60 bpm)",
		Other: "{{.Count}} readings with low heart rate (<60 bpm)",
	},
	OxygenLow: {
		One:   "{{.Count}} reading with low oxygen (<95%)",
		Other: "{{.Count}} readings with low oxygen (<95%)",
	},
	SleepLow: {
		One:   "{{.Count}} night with insufficient sleep (<6 hours)",
		Other: "{{.Count}} nights with insufficient sleep (<6 hours)",
	},
	HormoneImbalance: {
		One:   "{{.Count}} reading with hormone imbalance",
		Other: "{{.Count}} readings with hormone imbalance",
	},
}

var (
	customMessage = &i18n.Message{
		ID:    customMessageID,
		One:   "{{.Count}} reading matching {{.Condition}}",
		Other: "{{.Count}} readings matching {{.Condition}}",
	}
	allNormalMessage = &i18n.Message{
		ID:    allNormalMessageID,
		Other: "All readings within healthy ranges!",
	}
)

var fallbackBundle *i18n.Bundle

func init() {
	for id, m := range defaultMessages {
		m.ID = messageIDPrefix + id
	}

	fallbackBundle = i18n.NewBundle(language.English)
	if err := fallbackBundle.AddMessages(language.English, customMessage, allNormalMessage); err != nil {
		panic(err)
	}
	for _, m := range defaultMessages {
		if err := fallbackBundle.AddMessages(language.English, m); err != nil {
			panic(err)
		}
	}
}

// Message renders a finding as a sentence. A nil localizer gives English.
func Message(loc *i18n.Localizer, f schema.AlertFinding) string {
	m, ok := defaultMessages[f.ID]
	if !ok {
		m = customMessage
	}

	cfg := &i18n.LocalizeConfig{
		DefaultMessage: m,
		TemplateData: map[string]interface{}{
			"Count":     f.Count,
			"Condition": f.Condition,
		},
		PluralCount: f.Count,
	}

	if loc != nil {
		if msg, err := loc.Localize(cfg); err == nil {
			return msg
		}
	}

	if msg, err := i18n.NewLocalizer(fallbackBundle).Localize(cfg); err == nil {
		return msg
	}
	return fmt.Sprintf("%d readings matching %s", f.Count, f.Condition)
}

// AllNormalMessage is shown when no alert is raised
func AllNormalMessage(loc *i18n.Localizer) string {
	cfg := &i18n.LocalizeConfig{DefaultMessage: allNormalMessage}
	if loc != nil {
		if msg, err := loc.Localize(cfg); err == nil {
			return msg
		}
	}
	return allNormalMessage.Other
}

// Localize returns a copy of the result with every finding's message set
func Localize(loc *i18n.Localizer, r Result) Result {
	findings := make([]schema.AlertFinding, len(r.Findings))
	for i, f := range r.Findings {
		f.Message = Message(loc, f)
		findings[i] = f
	}
	return Result{
		Findings:  findings,
		AllNormal: r.AllNormal,
	}
}
