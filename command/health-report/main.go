package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bitmark-inc/health-metrics-api/report"
	"github.com/bitmark-inc/health-metrics-api/tabular"
	"github.com/bitmark-inc/health-metrics-api/utils"
)

var logger *zap.Logger

func init() {
	logger = buildLogger()
}

func buildLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(zapcore.InfoLevel)

	logger, err := config.Build()
	if err != nil {
		panic("Failed to setup logger")
	}

	return logger
}

func main() {
	var (
		file    string
		lang    string
		i18nDir string
		asJSON  bool
	)
	flag.StringVar(&file, "f", "", "path of the health data csv file")
	flag.StringVar(&lang, "lang", "en", "[optional] language of alert messages")
	flag.StringVar(&i18nDir, "i18n", "./i18n", "[optional] directory of message files")
	flag.BoolVar(&asJSON, "json", false, "[optional] print the report as json")
	flag.Parse()

	defer logger.Sync()

	if file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := utils.InitI18NBundle(i18nDir); err != nil {
		logger.Warn("alert messages fall back to English", zap.Error(err))
	}

	f, err := os.Open(file)
	if err != nil {
		logger.Fatal("open health data", zap.String("file", file), zap.Error(err))
	}
	defer f.Close()

	d, err := tabular.Parse(bufio.NewReader(f))
	if err != nil {
		logger.Fatal("load health data", zap.String("file", file), zap.Error(err))
	}
	logger.Info("health data loaded", zap.String("file", file), zap.Int("records", d.Len()))

	r := report.Build(d, utils.NewLocalizer(lang))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	} else {
		err = render(os.Stdout, r)
	}
	if err != nil {
		logger.Fatal("write report", zap.Error(err))
	}
}
