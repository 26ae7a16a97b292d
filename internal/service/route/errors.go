package route

import "errors"

var ErrAddressNotResolved = errors.New("address not resolved")
