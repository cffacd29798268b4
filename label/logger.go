package label

import "github.com/sirupsen/logrus"

var log logrus.FieldLogger = logrus.StandardLogger().WithField("module", "label")

// SetLogger routes package logging to l. Call it before rendering starts.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		return
	}
	log = l.WithField("module", "label")
}
