package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Fields logrus.Fields

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

func setDebugOutput(on bool) {
	if on {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// Entry is like a logrus.Entry, but bound to a module so that disabled
// levels cost nothing more than a mask check.
type Entry struct {
	mod    Module
	fields Fields
}

func (entry Entry) log() *logrus.Entry {
	final := logrus.StandardLogger().WithField("_mod", entry.mod.String())
	if len(entry.fields) != 0 {
		final = final.WithFields(logrus.Fields(entry.fields))
	}

	if len(contexts) != 0 {
		var z EntryZ
		for _, c := range contexts {
			c.AddLogContext(&z)
		}
		fields := make(logrus.Fields, z.zfidx)
		for i := range z.zfbuf[:z.zfidx] {
			fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
		}
		final = final.WithFields(fields)
	}
	return final
}

func (entry Entry) withFields(fields Fields) Entry {
	merged := make(Fields, len(entry.fields)+len(fields))
	for k, v := range entry.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	entry.fields = merged
	return entry
}

func (entry Entry) WithField(key string, value any) Entry {
	return entry.withFields(Fields{key: value})
}

func (entry Entry) Debugf(format string, args ...any) {
	if entry.mod.Enabled(DebugLevel) {
		entry.log().Debugf(format, args...)
	}
}

func (entry Entry) Warnf(format string, args ...any) {
	if entry.mod.Enabled(WarnLevel) {
		entry.log().Warnf(format, args...)
	}
}

func (entry Entry) Fatalf(format string, args ...any) {
	if entry.mod.Enabled(FatalLevel) {
		entry.log().Fatalf(format, args...)
	}
}

// Disable discards all log output.
func Disable() {
	logrus.SetOutput(io.Discard)
}
