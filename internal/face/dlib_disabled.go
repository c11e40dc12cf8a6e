//go:build !dlib

package face

import (
	"errors"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/config"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
)

// DlibAvailable reports whether this binary was built with dlib support
const DlibAvailable = false

// ErrDlibUnavailable is returned when PROVIDER_TYPE=dlib on a binary built without -tags dlib
var ErrDlibUnavailable = errors.New("dlib provider not compiled in (build with -tags dlib)")

func createDlibProvider(_ *config.Config) (provider.Extractor, func(), error) {
	return nil, nil, ErrDlibUnavailable
}
