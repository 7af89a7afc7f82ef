package privacy

import (
	"github.com/motorbill/motorbill/internal/config"
	"github.com/motorbill/motorbill/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the field cipher.
var Module = fx.Module("privacy",
	fx.Provide(Provide),
)

type Params struct {
	fx.In

	Cfg     config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

// Provide wires the cipher from config. A missing or unloadable key is a
// documented degradation to plaintext passthrough, not a startup failure.
func Provide(p Params) *Cipher {
	log := p.Log.Named("privacy")

	if !p.Cfg.FieldEncryption {
		log.Warn("field encryption disabled; identity fields stored as plaintext")
		return NewCipher(nil, p.Metrics)
	}

	key, err := LoadOrCreateKey(p.Cfg.DataDir)
	if err != nil {
		log.Warn("field key unavailable; falling back to plaintext passthrough", zap.Error(err))
		return NewCipher(nil, p.Metrics)
	}

	return NewCipher(key, p.Metrics)
}
