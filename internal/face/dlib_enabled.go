//go:build dlib

package face

import (
	"github.com/saturnino-fabrica-de-software/acquaint/internal/config"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider"
	"github.com/saturnino-fabrica-de-software/acquaint/internal/provider/dlib"
)

// DlibAvailable reports whether this binary was built with dlib support
const DlibAvailable = true

func createDlibProvider(cfg *config.Config) (provider.Extractor, func(), error) {
	p, err := dlib.NewProvider(cfg.DlibModelsDir)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}
