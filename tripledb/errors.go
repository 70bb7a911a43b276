package tripledb

import "errors"

// ErrValueTruncated is wrapped into DeserializeValue errors when the input
// is shorter than the encoded length the tag/length-prefix promises.
var ErrValueTruncated = errors.New("tripledb: truncated value bytes")

// ErrValueBadKind is wrapped into DeserializeValue errors when the leading
// tag byte doesn't match any known ValueKind.
var ErrValueBadKind = errors.New("tripledb: unknown value kind")
