package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/health-metrics-api/alert"
	"github.com/bitmark-inc/health-metrics-api/schema"
)

var sleepFinding = schema.AlertFinding{
	ID:        alert.SleepLow,
	Metric:    schema.SleepPatterns,
	Condition: "SleepPatterns < 6",
	Count:     2,
}

func TestNewLocalizerWithoutBundle(t *testing.T) {
	bundle = nil
	assert.Nil(t, NewLocalizer("en"))
}

func TestInitI18NBundle(t *testing.T) {
	require.NoError(t, InitI18NBundle("../i18n"))
	defer func() { bundle = nil }()

	en := NewLocalizer("en")
	require.NotNil(t, en)
	assert.Equal(t, "2 nights with insufficient sleep (<6 hours)", alert.Message(en, sleepFinding))

	tw := NewLocalizer("zh-TW")
	assert.Equal(t, "2 晚睡眠不足 (<6 小時)", alert.Message(tw, sleepFinding))
	assert.Equal(t, "所有紀錄皆在健康範圍內！", alert.AllNormalMessage(tw))

	unknown := NewLocalizer("fr")
	assert.Equal(t, "All readings within healthy ranges!", alert.AllNormalMessage(unknown))
}

func TestInitI18NBundleMissingDir(t *testing.T) {
	assert.Error(t, InitI18NBundle("testdata/none"))
	assert.Nil(t, bundle)
}
