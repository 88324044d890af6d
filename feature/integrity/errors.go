package integrity

import "errors"

var errNoCatalog = errors.New("catalog is not loaded")
