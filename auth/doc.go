// Package auth issues and verifies the HMAC-signed JWTs that guard the
// admin API.
//
//	auth:
//	  enabled: true
//	  secret: "change-me"
//	  issuer: "ssehub"
//	  token_ttl: "1h"
//
// Service.Validator plugs into server/middleware.Auth.
package auth
