package phraseidx

import "errors"

var (
	errBadMagic        = errors.New("phraseidx: bad magic number")
	errVersionMismatch = errors.New("phraseidx: format version mismatch")
)
