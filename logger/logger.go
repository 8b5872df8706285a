// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
)

// Logger supports structured logging, *zap.SugaredLogger satisfies it
type Logger interface {
	Debugw(msg string, keyValues ...interface{})
	Infow(msg string, keyValues ...interface{})
	Warnw(msg string, keyValues ...interface{})
	Errorw(msg string, keyValues ...interface{})
	Fatalw(msg string, keyValues ...interface{})

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
}

var _ Logger = (*zap.SugaredLogger)(nil)

var (
	instance Logger
	mtx      sync.RWMutex
)

// New creates a zap sugared logger, development mode when debug is true
func New(debug bool) Logger {
	var (
		inst *zap.Logger
		err  error
	)
	if debug {
		inst, err = zap.NewDevelopment()
	} else {
		inst, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	return inst.Sugar()
}

// Set replaces the global logger
func Set(l Logger) {
	mtx.Lock()
	defer mtx.Unlock()
	instance = l
}

// I returns the global logger, a production logger is created on first use
func I() Logger {
	mtx.RLock()
	inst := instance
	mtx.RUnlock()
	if inst != nil {
		return inst
	}

	mtx.Lock()
	defer mtx.Unlock()
	if instance == nil {
		instance = New(false)
	}
	return instance
}
