// Package rest adapts the auth core to HTTP: it maps fiber requests onto
// the resolver's Request interface, renders every pipeline failure as a
// stable machine-readable error envelope, and hosts the email
// confirmation endpoints.
package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Shikharishere/api/auth"
)

// fiberRequest maps a fiber context onto auth.Request.
type fiberRequest struct {
	c *fiber.Ctx
}

var _ auth.Request = (*fiberRequest)(nil)

// FromFiber wraps a fiber context for the resolver.
func FromFiber(c *fiber.Ctx) auth.Request {
	return &fiberRequest{c: c}
}

func (r *fiberRequest) Header(name string) string {
	return r.c.Get(name)
}

func (r *fiberRequest) Query(name string) string {
	return r.c.Query(name)
}

func (r *fiberRequest) IP() string {
	return r.c.IP()
}

func (r *fiberRequest) UserAgent() string {
	return r.c.Get(fiber.HeaderUserAgent)
}
