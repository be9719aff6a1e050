package utils

import (
	"mime"
	"regexp"
	"strings"
)

var (
	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based. This includes "text/*", JSON and XML documents
	// (including structured "+json" and "+xml" suffixes), form submissions and scripts.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile(`^application/[a-z0-9.+-]+\+json$`),
		regexp.MustCompile("^application/xml$"),
		regexp.MustCompile(`^application/[a-z0-9.+-]+\+xml$`),
		regexp.MustCompile("^application/x-www-form-urlencoded$"),
		regexp.MustCompile("^application/(x-)?javascript$"),
		regexp.MustCompile("^application/x-ndjson$"),
	}

	// textCharsets lists the charsets that can be shown without transcoding.
	//nolint:gochecknoglobals // This is an immutable set used as a constant.
	textCharsets = map[string]struct{}{
		"":           {},
		"utf-8":      {},
		"utf8":       {},
		"us-ascii":   {},
		"iso-8859-1": {},
	}
)

// IsTextContentType checks if the given content type represents a text-based format.
// It supports "text/*", JSON, XML, form-urlencoded and JavaScript content types.
// It also checks that the charset, if present, can be displayed as is.
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		_, ok := textCharsets[strings.ToLower(params["charset"])]

		return ok
	}

	return false
}
