package logging

import (
	"bytes"
	"strings"
)

type Level int

const (
	DEBUG Level = iota + 1
	INFO
	NOTICE
	WARN
	ERROR
	FATAL

	levelDEBUG  = "DEBUG"
	levelINFO   = "INFO"
	levelNOTICE = "NOTICE"
	levelWARN   = "WARN"
	levelERROR  = "ERROR"
	levelFATAL  = "FATAL"
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return levelDEBUG
	case INFO:
		return levelINFO
	case NOTICE:
		return levelNOTICE
	case WARN:
		return levelWARN
	case ERROR:
		return levelERROR
	case FATAL:
		return levelFATAL
	default:
		return ""
	}
}

//nolint:mnd // Color codes are sent as numbers
func (l Level) color() uint {
	switch l {
	case ERROR, FATAL:
		return 31
	case WARN, NOTICE:
		return 33
	case INFO, DEBUG:
		return 36
	default:
		return 37
	}
}

func (l Level) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(l.String())
	buffer.WriteString(`"`)

	return buffer.Bytes(), nil
}

// GetLevelFromString maps a LOG_LEVEL value to a Level. Unknown values fall back to INFO.
func GetLevelFromString(level string) Level {
	switch strings.ToUpper(level) {
	case levelDEBUG:
		return DEBUG
	case levelINFO:
		return INFO
	case levelNOTICE:
		return NOTICE
	case levelWARN:
		return WARN
	case levelERROR:
		return ERROR
	case levelFATAL:
		return FATAL
	default:
		return INFO
	}
}
