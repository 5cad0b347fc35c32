package management

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fyrsmithlabs/logpipe/pkg/core"
)

// Configurator is the live introspection endpoint for a logging
// context: it exposes the current level table and lets management
// tooling alter component levels at runtime.
//
// Routes (relative to wherever the host mounts it):
//
//	GET    /levels          full level table
//	PUT    /levels/:name    set a component's level
//	DELETE /levels/:name    clear a component's override
//	GET    /status          internal runtime diagnostics
type Configurator struct {
	ctx     *core.Context
	service string
	echo    *echo.Echo
}

// LevelsResponse is the body of GET /levels.
type LevelsResponse struct {
	Service string            `json:"service"`
	Root    string            `json:"root"`
	Loggers map[string]string `json:"loggers"`
}

// SetLevelRequest is the body of PUT /levels/:name.
type SetLevelRequest struct {
	Level string `json:"level"`
}

// StatusEntry is one element of the GET /status response.
type StatusEntry struct {
	Level   string `json:"level"`
	Time    string `json:"time"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewConfigurator creates the endpoint wrapping ctx.
func NewConfigurator(ctx *core.Context, serviceName string) *Configurator {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	c := &Configurator{ctx: ctx, service: serviceName, echo: e}

	e.GET("/levels", c.handleLevels)
	e.PUT("/levels/:name", c.handleSetLevel)
	e.DELETE("/levels/:name", c.handleClearLevel)
	e.GET("/status", c.handleStatus)

	return c
}

// ServeHTTP implements http.Handler.
func (c *Configurator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.echo.ServeHTTP(w, r)
}

func (c *Configurator) handleLevels(ec echo.Context) error {
	levels := c.ctx.Levels()
	resp := LevelsResponse{
		Service: c.service,
		Loggers: make(map[string]string, len(levels)),
	}
	for name, level := range levels {
		if name == core.RootComponentName {
			resp.Root = core.LevelString(level)
			continue
		}
		resp.Loggers[name] = core.LevelString(level)
	}
	return ec.JSON(http.StatusOK, resp)
}

func (c *Configurator) handleSetLevel(ec echo.Context) error {
	var req SetLevelRequest
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	level, err := core.ParseLevel(req.Level)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	c.ctx.Component(ec.Param("name")).SetLevel(level)
	return ec.NoContent(http.StatusNoContent)
}

func (c *Configurator) handleClearLevel(ec echo.Context) error {
	name := ec.Param("name")
	if name == core.RootComponentName || name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "root level cannot be cleared")
	}
	c.ctx.Component(name).ClearLevel()
	return ec.NoContent(http.StatusNoContent)
}

func (c *Configurator) handleStatus(ec echo.Context) error {
	statuses := c.ctx.Status().All()
	out := make([]StatusEntry, 0, len(statuses))
	for _, s := range statuses {
		entry := StatusEntry{
			Level:   s.Level.String(),
			Time:    s.Time.Format(time.RFC3339),
			Message: s.Message,
		}
		if s.Err != nil {
			entry.Error = s.Err.Error()
		}
		out = append(out, entry)
	}
	return ec.JSON(http.StatusOK, out)
}
