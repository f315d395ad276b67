package reconciler

import (
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

func init() {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	logger = l.Sugar()
}

// UseLogger replaces the package logger.
func UseLogger(l *zap.Logger) {
	logger = l.Sugar()
}
