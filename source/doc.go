// Package source resolves source identifiers into payload text.
//
// An identifier is either a path to an existing local file or an absolute
// http(s) URL. Resolution normalizes the identifier, classifies it once into
// a Locator, and reads the complete document with the strategy of its Kind:
//
//	r, err := source.NewResolver(source.WithTimeout(10 * time.Second))
//	if err != nil {
//		return err
//	}
//	payload, err := r.Resolve(ctx, "  'https://example.com/x.txt'  ")
//
// Payloads compressed with zstd, s2, lz4 or gzip are decoded transparently.
// The format is taken from the locator suffix, the Content-Encoding response
// header, or the magic bytes of the payload, in that order.
//
// Every failure is a *Error wrapping ErrInvalidSource or ErrSourceUnavailable.
package source
