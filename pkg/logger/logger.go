// Package logger arma el zerolog de la aplicación: JSON estructurado en
// producción y consola coloreada durante el desarrollo local.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config determina el formato de salida y el nivel mínimo a emitir.
type Config struct {
	Env   string // "development" imprime consola legible; cualquier otro valor, JSON
	Level string // trace | debug | info | warn | error (info si no se reconoce)
}

// Logger envuelve un zerolog.Logger para que el resto del código dependa de
// este paquete y no del import de zerolog en cada archivo.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según la configuración y lo deja también como
// logger global de zerolog, para las dependencias que escriben por ahí.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(nivel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

var niveles = map[string]zerolog.Level{
	"trace": zerolog.TraceLevel,
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

func nivel(s string) zerolog.Level {
	if lvl, ok := niveles[s]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos (por ejemplo el nombre del componente).
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Zerolog expone el logger subyacente para quien necesite pasarlo por valor.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
