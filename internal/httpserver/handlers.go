package httpserver

import "log"

type handlers struct {
	deps   Deps
	logger *log.Logger
}
