package static

import "errors"

var ErrInvalidCatalog = errors.New("static: invalid catalog")
