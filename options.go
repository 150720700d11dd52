package rack

// Option configures an Interaction.
type Option func(*options)

// options holds interaction configuration keyed by OptKey name.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for interaction options.
//
// Example:
//
//	ui := rack.NewInteraction(scene,
//	    rack.WithOpt(rack.OptScrollMultiplier, 30),
//	    rack.WithKeyboard(driver))
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name.
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value, or the key's default if unset.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var (
	// OptSwapScrollOnShift swaps the scroll axes while Shift is held.
	OptSwapScrollOnShift = NewOptKey("swapScrollOnShift", false)
	// OptCtrlClickIsRightClick turns Control+left click into a right click.
	OptCtrlClickIsRightClick = NewOptKey("ctrlClickIsRightClick", false)
	// OptScrollMultiplier amplifies native wheel deltas.
	OptScrollMultiplier = NewOptKey[float32]("scrollMultiplier", 50)
	OptKeyboardDriver   = NewOptKey[KeyboardDriver]("keyboardDriver", nil)
	OptCursorLocker     = NewOptKey[CursorLocker]("cursorLocker", nil)
)

// WithKeyboard routes Caps Lock key transitions to d.
func WithKeyboard(d KeyboardDriver) Option { return WithOpt(OptKeyboardDriver, d) }

// WithCursorLocker lets widgets lock the cursor through l.
func WithCursorLocker(l CursorLocker) Option { return WithOpt(OptCursorLocker, l) }

// SwapScrollOnShift enables axis swapping for Shift+wheel.
func SwapScrollOnShift(on bool) Option { return WithOpt(OptSwapScrollOnShift, on) }

// CtrlClickIsRightClick enables the single-button mouse emulation.
func CtrlClickIsRightClick(on bool) Option { return WithOpt(OptCtrlClickIsRightClick, on) }
