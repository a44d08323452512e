package handler

import (
	"tubescribe/internal/service"
	"tubescribe/internal/taskrunner"
)

// configUpdated is flipped by the config endpoint, the next task request
// rebuilds the service with the new settings.
var configUpdated bool

type Handler struct {
	Runner *taskrunner.Runner
}

func NewHandler() *Handler {
	return &Handler{
		Runner: taskrunner.New(service.NewService(), taskrunner.DefaultConfig()),
	}
}
