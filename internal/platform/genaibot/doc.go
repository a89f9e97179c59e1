// Package genaibot implements the generation port against the deployed
// GenAI Bot HTTP API. It owns the wire contract (request/response/error
// payload shapes), translates every transport and protocol failure into a
// typed outcome before it crosses the port boundary, and exposes the
// service's usage-analytics endpoint as a read-only data source.
package genaibot
