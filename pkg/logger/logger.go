package logger

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/Meesho/BharatMLStack/prediction-gateway/pkg/configs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var applicationName = ""

func InitLogger(configs *configs.AppConfigs) {
	applicationName = configs.Configs.ApplicationName
	SetLogLevel(configs.Configs.ApplicationLogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		NoColor:    true,
		TimeFormat: "2006-01-02 15:04:05.000",
	}).With().Str("app", applicationName).Logger()
	Info("Logger initialized!")
}

// SetLogLevel panics on an unknown level, the service must not start half-configured.
func SetLogLevel(logLevel string) {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "INFO":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "FATAL":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "PANIC":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "DISABLED":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		Panic(fmt.Sprintf("Incorrect log level %s", logLevel), nil)
	}
}

func Info(message string) {
	log.Info().Msg(message)
}

func Warn(message string) {
	log.Warn().Msg(message)
}

func Error(message string, err error) {
	log.Error().Err(err).Msg(message)
}

// PercentError logs roughly loggingPercent out of every hundred calls, default ten.
func PercentError(message string, err error, loggingPercent int) {
	if loggingPercent == 0 {
		loggingPercent = 10
	}
	if rand.Intn(100)+1 <= loggingPercent {
		log.Error().Err(err).Msg(message)
	}
}

func Panic(message string, err error) {
	log.Panic().Err(err).Msg(message)
}
