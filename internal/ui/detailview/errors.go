package detailview

import "errors"

var errNoLink = errors.New("record has no web link")
