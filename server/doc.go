// Package server is the thin HTTP/WebSocket glue over *sim.Engine's command
// surface (spec §6 "out of scope... treated as external collaborators").
// It holds no simulation state of its own: every handler does nothing more
// than decode a request, call one Engine method, and encode the reply.
package server
