// Package security builds the server-side TLS configuration for the HTTP
// listener. Session cookies are marked Secure in production, so the listener
// either terminates TLS itself or sits behind a proxy that does.
//
//	cfg := security.TLSConfig{
//	    CertFile: "/etc/authserver/tls.crt",
//	    KeyFile:  "/etc/authserver/tls.key",
//	}
//	tlsConfig, err := cfg.Build()
package security
