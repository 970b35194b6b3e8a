// Package security builds the server TLS configuration. With TLS enabled
// the server negotiates HTTP/2, so many event streams from one browser
// share a single connection.
//
//	server:
//	  tls:
//	    cert_file: /etc/ssed/tls.crt
//	    key_file: /etc/ssed/tls.key
//	    client_ca_file: /etc/ssed/clients.pem   # optional, enables mTLS
package security
