package useragent

import "strings"

// Platform is a single "name/version details)" descriptor.
type Platform struct {
	Name    string
	Version string
	Details string
}

// UserAgent holds the ordered platforms and trailing extension tokens of a
// User-Agent header.
type UserAgent struct {
	Platforms  []Platform
	Extensions []string
}

// Parse splits header into platforms and extensions.
func Parse(header string) UserAgent {
	segments := splitInclusive(header, ')')
	if len(segments) == 0 {
		return UserAgent{Platforms: []Platform{}, Extensions: []string{}}
	}

	extensions := []string{}
	if last := segments[len(segments)-1]; !strings.HasSuffix(last, ")") {
		extensions = parseExtensions(last)
		segments = segments[:len(segments)-1]
	}

	platforms := make([]Platform, 0, len(segments))
	for _, seg := range segments {
		platforms = append(platforms, parsePlatform(seg))
	}

	return UserAgent{Platforms: platforms, Extensions: extensions}
}

func parsePlatform(segment string) Platform {
	name, rest, found := strings.Cut(segment, "/")
	if !found {
		return Platform{Name: segment}
	}

	version, details, _ := strings.Cut(rest, " ")

	return Platform{Name: name, Version: version, Details: details}
}

func parseExtensions(blob string) []string {
	fields := strings.Split(blob, " ")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// splitInclusive splits s after every occurrence of sep, keeping sep at the
// end of each segment. A trailing remainder without sep is the last segment.
func splitInclusive(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
