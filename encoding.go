package lumen

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// resolveEncoding maps a configured encoding name to an encoder for file
// output. Empty name and UTF-8 aliases mean no transformation. Unknown
// names fail at construction time.
func resolveEncoding(name string) (*encoding.Encoder, error) {
	trimmed := strings.TrimSpace(name)
	switch strings.ToLower(trimmed) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(trimmed)
	if err != nil || enc == nil {
		return nil, configError("unknown text encoding '%s'", name)
	}
	return enc.NewEncoder(), nil
}
