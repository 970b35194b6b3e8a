package server

import (
	"sort"
	"strings"

	"github.com/kbukum/ssehub/logger"
)

// systemPaths are the probe and info routes registered by
// RegisterDefaultEndpoints.
var systemPaths = map[string]bool{
	"/health": true,
	"/ready":  true,
	"/alive":  true,
	"/info":   true,
}

// Route is one registered Gin route.
type Route struct {
	Method  string
	Path    string
	Handler string
	System  bool
}

// Routes returns the Gin routes, API routes first, each group sorted by
// path and then method.
func (s *Server) Routes() []Route {
	ginRoutes := s.engine.Routes()
	sort.Slice(ginRoutes, func(i, j int) bool {
		iSys, jSys := systemPaths[ginRoutes[i].Path], systemPaths[ginRoutes[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return methodOrder(ginRoutes[i].Method) < methodOrder(ginRoutes[j].Method)
	})

	routes := make([]Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
			System:  systemPaths[r.Path],
		})
	}
	return routes
}

// LogRoutes logs every Gin route at debug level.
func (s *Server) LogRoutes() {
	for _, r := range s.Routes() {
		s.log.Debug("Route", logger.Fields("method", r.Method, "path", r.Path, "handler", r.Handler, "system", r.System))
	}
}

// formatHandlerName shortens Gin's handler name, e.g.
// "github.com/kbukum/ssehub/api.(*Handlers).SendEvent-fm" becomes
// "Handlers.SendEvent" and closures become their lowercased constructor name.
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	if strings.Contains(name, ".func") {
		parts := strings.Split(name, ".")
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				return strings.ToLower(parts[i])
			}
		}
	}

	// Drop a lowercase package prefix: "api.Handlers.ListClients" -> "Handlers.ListClients".
	if pkg, rest, ok := strings.Cut(name, "."); ok && rest != "" && strings.ToLower(pkg) == pkg {
		name = rest
	}
	return name
}

// methodOrder returns a sort key for HTTP methods (GET first, DELETE last).
func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	case "PUT":
		return 2
	case "PATCH":
		return 3
	case "DELETE":
		return 4
	default:
		return 5
	}
}
