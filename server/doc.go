// Package server runs the Gin HTTP server behind an h2c handler and exposes
// it as a lifecycle component.
//
// Middleware lives in server/middleware (recovery, request ID, CORS, body
// size limit, request logging) and the operational endpoints in
// server/endpoint (/health, /info, /metrics).
package server
