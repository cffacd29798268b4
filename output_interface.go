package main

import (
	"image"
)

type OutputHandler interface {
	Output(name string, img image.Image) error
	Close() error
	GetType() string
}

type OutputManager struct {
	handlers []OutputHandler
}

func NewOutputManager() *OutputManager {
	return &OutputManager{
		handlers: make([]OutputHandler, 0),
	}
}

func (om *OutputManager) AddHandler(handler OutputHandler) {
	om.handlers = append(om.handlers, handler)
}

// Output hands img to every handler. It fails only when no handler
// succeeded.
func (om *OutputManager) Output(name string, img image.Image) error {
	var lastErr error
	hasSuccess := false

	for _, handler := range om.handlers {
		if err := handler.Output(name, img); err != nil {
			logWarnModule("output", "%s failed for %s: %v", handler.GetType(), name, err)
			lastErr = err
		} else {
			hasSuccess = true
		}
	}

	if !hasSuccess && lastErr != nil {
		return lastErr
	}

	return nil
}

func (om *OutputManager) Close() {
	for _, handler := range om.handlers {
		if err := handler.Close(); err != nil {
			logWarnModule("output", "%s close failed: %v", handler.GetType(), err)
		}
	}
}
