package helm

import (
	"strings"

	"github.com/pkg/errors"
)

// Options is an ordered set of command line flags. A flag with an empty value
// is rendered on its own.
type Options struct {
	names  []string
	values map[string]string
}

func NewOptions() *Options {
	return &Options{values: map[string]string{}}
}

func (o *Options) With(name string, value string) *Options {
	if o.values == nil {
		o.values = map[string]string{}
	}
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = value
	return o
}

func (o *Options) Has(name string) bool {
	if o == nil {
		return false
	}
	_, ok := o.values[name]
	return ok
}

func (o *Options) Get(name string) string {
	if o == nil {
		return ""
	}
	return o.values[name]
}

// Without returns a copy of the options with name removed.
func (o *Options) Without(name string) *Options {
	out := NewOptions()
	if o == nil {
		return out
	}
	for _, n := range o.names {
		if n != name {
			out.With(n, o.values[n])
		}
	}
	return out
}

func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.names)
}

// Args renders every flag as --name followed by its value, if any, as a
// separate argument.
func (o *Options) Args() []string {
	if o == nil {
		return nil
	}
	var args []string
	for _, name := range o.names {
		args = append(args, "--"+name)
		if value := o.values[name]; value != "" {
			args = append(args, value)
		}
	}
	return args
}

func (o *Options) String() string {
	return strings.Join(o.Args(), " ")
}

// ParseOptions reads flags given as name or name=value, e.g. from a repeated
// command line option.
func ParseOptions(flags []string) (*Options, error) {
	options := NewOptions()
	for _, flag := range flags {
		flag = strings.TrimLeft(strings.TrimSpace(flag), "-")
		if flag == "" {
			return nil, errors.New("empty option")
		}
		name, value := flag, ""
		if i := strings.Index(flag, "="); i >= 0 {
			name, value = flag[:i], flag[i+1:]
		}
		if name == "" {
			return nil, errors.Errorf("option %q has no name", flag)
		}
		options.With(name, value)
	}
	return options, nil
}
