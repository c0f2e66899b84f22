package importer

import "errors"

var (
	// ErrUnsupportedFile means the upload extension matched no pipeline
	ErrUnsupportedFile = errors.New("unsupported import file type")
)
