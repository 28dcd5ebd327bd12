// Package repository holds the options shared by the entity repositories.
package repository

import (
	"procure.GO/core/cache"
	"procure.GO/core/flatfile"
)

// Options configures how a repository opens its file.
type Options struct {
	Delimiter rune
	Cache     *cache.Cache
	Quiet     bool
}

type Option func(*Options)

// WithDelimiter sets the field separator of the underlying file.
func WithDelimiter(r rune) Option {
	return func(o *Options) { o.Delimiter = r }
}

// WithCache enables memoization of derived queries.
func WithCache(c *cache.Cache) Option {
	return func(o *Options) { o.Cache = c }
}

// WithoutWarnings silences corrupt-line logging.
func WithoutWarnings() Option {
	return func(o *Options) { o.Quiet = true }
}

func Apply(opts []Option) Options {
	o := Options{Delimiter: ','}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// StoreOptions translates repository options for flatfile.New.
func (o Options) StoreOptions() []flatfile.Option {
	out := []flatfile.Option{flatfile.WithDelimiter(o.Delimiter)}
	if o.Quiet {
		out = append(out, flatfile.WithoutWarnings())
	}
	return out
}
