// Package api exposes the broadcast service to operators over JSON:
//
//	GET  /api/clients                list connected clients
//	GET  /api/clients/:id            one client
//	POST /api/events                 broadcast text or a structured event
//	GET  /api/reconnect-interval     current reconnect interval
//	PUT  /api/reconnect-interval     change and push the interval
//
// A broadcast in which some deliveries fail answers 502 DELIVERY_FAILED
// listing the failed client IDs; the rest were still delivered.
package api
