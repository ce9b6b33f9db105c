// Package option implements the functional option idiom
// used by the adapter packages for their construction time configuration.
package option

// Option represents a configuration option of a given Config type.
type Option[Config any] interface {
	// Configure will apply the option on the Config value.
	Configure(*Config)
}

// Func (option.Func[Config]) is a default implementation for creating options.
type Func[Config any] func(*Config)

func (fn Func[Config]) Configure(c *Config) { fn(c) }

// Use creates a Config value out of the received options.
func Use[Config any, Opt Option[Config]](opts []Opt) Config {
	var c Config
	if init, ok := any(&c).(initer); ok {
		init.Init()
	}
	for _, opt := range opts {
		opt.Configure(&c)
	}
	return c
}

type initer interface {
	Init()
}
