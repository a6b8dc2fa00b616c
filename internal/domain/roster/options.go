package roster

// Option applies a configuration option to the Registry.
type Option func(*Registry)

// WithAliases sets the number alias table. The table is copied.
func WithAliases(aliases []Alias) Option {
	return func(r *Registry) {
		r.aliases = append(AliasTable(nil), aliases...)
	}
}
