// Package useragent splits a raw User-Agent header into the signals used for
// session fingerprinting.
//
// A header is read as a run of platform descriptors, each closed by ")", and
// an optional trailing blob of extension tokens:
//
//	Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36
//	└──────── platform ───────────┘└────────── platform ─────────────────┘└──────── extensions ────────┘
//
// Each platform is parsed as name/version details: the name runs up to the
// first "/", the version up to the following space, and the details are the
// rest of the segment. Whitespace is preserved exactly as received so that
// hashes stay comparable between requests.
//
// Parsing never fails. An empty header yields an empty UserAgent.
//
// # Usage
//
//	ua := useragent.Parse(r.UserAgent())
//	for _, p := range ua.Platforms {
//	    fmt.Println(p.Name, p.Version, p.Details)
//	}
//	fmt.Println(ua.Extensions) // [Chrome/112.0.0.0 Safari/537.36]
package useragent
