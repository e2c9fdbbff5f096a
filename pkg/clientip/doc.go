// Package clientip resolves the IP address of the client behind an HTTP
// request.
//
// The session fingerprint hashes this address, so a header the client can
// forge must never be trusted by default. A Resolver therefore reads only
// RemoteAddr unless it is explicitly configured with the proxy headers that
// the deployment's edge overwrites (for example CF-Connecting-IP behind
// Cloudflare, or X-Forwarded-For behind a single trusted load balancer).
//
// Headers are consulted in the configured order. X-Forwarded-For style lists
// yield their first valid entry. Every candidate is validated and normalised
// with net.ParseIP; invalid values fall through to the next source.
//
// # Usage
//
//	r := clientip.NewResolver(clientip.WithTrustedHeaders("CF-Connecting-IP"))
//	ip := r.Resolve(req)
//
//	// or as middleware
//	mux := r.Middleware(next)
//	ip := clientip.FromContext(req.Context())
package clientip
