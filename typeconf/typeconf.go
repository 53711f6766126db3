/*
Package typeconf reads type map definitions from TOML documents.

Type maps usually need code for validation and conversion. For the common
cases, i.e. numbers within a range or words normalized to a case, type maps
may instead be declared in a configuration file:

    locale = "de-DE"                # optional, defaults to the user's locale

    [types.Color]
    pattern = "(?:red|green|blue)"
    convert = "lower"               # string, int, float, upper, lower, title

    [types.Percent]
    pattern = '\d{1,3}'
    convert = "int"
    min = 0
    max = 100

Fragments are wrapped to accept quoted values as well, unless `quoted = false`
is set. Values outside of [min…max] fail validation, i.e. patterns will not
match them.

Case conversions follow the rules of the configured locale. If no locale is
configured, it is taken from the environment.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package typeconf

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	jj "github.com/cloudfoundry/jibber_jabber"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wordex/fragment"
	"github.com/npillmayer/wordex/typemap"
	"github.com/pelletier/go-toml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tracer traces to the core tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrConfig is the error class for invalid type definitions.
var ErrConfig = errors.New("invalid type configuration")

// DefaultLocale is used if neither the configuration nor the environment
// tell a locale.
const DefaultLocale = "en-US"

// Conversions of matched values.
const (
	ConvertString = "string"
	ConvertInt    = "int"
	ConvertFloat  = "float"
	ConvertUpper  = "upper"
	ConvertLower  = "lower"
	ConvertTitle  = "title"
)

// Definition declares a type map.
type Definition struct {
	Name    string
	Pattern string
	Convert string
	Quoted  bool
	Min     *Bound // numeric conversions only
	Max     *Bound
}

// Bound is a limit of a numeric type. Integer limits are kept exact.
type Bound struct {
	Int     int64
	Float   float64
	IsFloat bool
}

func (b Bound) String() string {
	if b.IsFloat {
		return strconv.FormatFloat(b.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(b.Int, 10)
}

// below tells if n is less than b.
func (b Bound) below(n int64) bool {
	if b.IsFloat {
		return float64(n) < b.Float
	}
	return n < b.Int
}

// above tells if n is greater than b.
func (b Bound) above(n int64) bool {
	if b.IsFloat {
		return float64(n) > b.Float
	}
	return n > b.Int
}

func (b Bound) value() float64 {
	if b.IsFloat {
		return b.Float
	}
	return float64(b.Int)
}

// Config is a set of type definitions.
type Config struct {
	Locale string
	Types  []Definition
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return fromTree(tree)
}

// Parse reads a configuration from TOML text.
func Parse(data []byte) (*Config, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return fromTree(tree)
}

func fromTree(tree *toml.Tree) (*Config, error) {
	conf := &Config{}
	if v := tree.Get("locale"); v != nil {
		locale, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: locale must be a string", ErrConfig)
		}
		conf.Locale = locale
	}
	v := tree.Get("types")
	if v == nil {
		return conf, nil
	}
	types, ok := v.(*toml.Tree)
	if !ok {
		return nil, fmt.Errorf("%w: 'types' must be a table", ErrConfig)
	}
	names := types.Keys()
	sort.Strings(names)
	for _, name := range names {
		t, ok := types.GetPath([]string{name}).(*toml.Tree)
		if !ok {
			return nil, fmt.Errorf("%w: type %s must be a table", ErrConfig, name)
		}
		def, err := definitionFromTree(name, t)
		if err != nil {
			return nil, err
		}
		conf.Types = append(conf.Types, def)
	}
	return conf, nil
}

func definitionFromTree(name string, t *toml.Tree) (Definition, error) {
	def := Definition{Name: name, Convert: ConvertString, Quoted: true}
	pattern, ok := t.Get("pattern").(string)
	if !ok || pattern == "" {
		return def, fmt.Errorf("%w: type %s needs a pattern", ErrConfig, name)
	}
	def.Pattern = pattern
	if v := t.Get("convert"); v != nil {
		if def.Convert, ok = v.(string); !ok {
			return def, fmt.Errorf("%w: type %s: convert must be a string", ErrConfig, name)
		}
	}
	if v := t.Get("quoted"); v != nil {
		if def.Quoted, ok = v.(bool); !ok {
			return def, fmt.Errorf("%w: type %s: quoted must be true or false", ErrConfig, name)
		}
	}
	var err error
	if def.Min, err = number(t, "min"); err != nil {
		return def, fmt.Errorf("%w: type %s: %v", ErrConfig, name, err)
	}
	if def.Max, err = number(t, "max"); err != nil {
		return def, fmt.Errorf("%w: type %s: %v", ErrConfig, name, err)
	}
	return def, nil
}

func number(t *toml.Tree, key string) (*Bound, error) {
	switch v := t.Get(key).(type) {
	case nil:
		return nil, nil
	case int64:
		return &Bound{Int: v}, nil
	case float64:
		return &Bound{Float: v, IsFloat: true}, nil
	}
	return nil, fmt.Errorf("%s must be a number", key)
}

// Install registers all type definitions of a configuration with a registry.
func (conf *Config) Install(reg *typemap.Registry) error {
	tag := language.Make(conf.locale())
	for _, def := range conf.Types {
		validate, err := def.validator(tag)
		if err != nil {
			return err
		}
		pattern := def.Pattern
		if def.Quoted {
			pattern = fragment.QuotedVariants(pattern)
		}
		if err := reg.Register(def.Name, pattern, validate); err != nil {
			return fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}
	return nil
}

func (conf *Config) locale() string {
	if conf.Locale != "" {
		return conf.Locale
	}
	userLocale, err := jj.DetectIETF()
	if err != nil {
		tracer().Infof("cannot detect user locale: %v; using %s", err, DefaultLocale)
		return DefaultLocale
	}
	tracer().Debugf("detected user locale %s", userLocale)
	return userLocale
}

func (def Definition) validator(tag language.Tag) (typemap.Validator, error) {
	numeric := def.Convert == ConvertInt || def.Convert == ConvertFloat
	if !numeric && (def.Min != nil || def.Max != nil) {
		return nil, fmt.Errorf("%w: type %s: min/max need a numeric conversion", ErrConfig, def.Name)
	}
	switch def.Convert {
	case ConvertString:
		return nil, nil
	case ConvertInt:
		return func(ctx typemap.Context, value string) (interface{}, error) {
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, typemap.Reject(value, "not an integer")
			}
			if err := def.checkIntRange(value, n); err != nil {
				return nil, err
			}
			return n, nil
		}, nil
	case ConvertFloat:
		return func(ctx typemap.Context, value string) (interface{}, error) {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, typemap.Reject(value, "not a number")
			}
			if err := def.checkRange(value, f); err != nil {
				return nil, err
			}
			return f, nil
		}, nil
	case ConvertUpper:
		return caseConversion(func() cases.Caser { return cases.Upper(tag) }), nil
	case ConvertLower:
		return caseConversion(func() cases.Caser { return cases.Lower(tag) }), nil
	case ConvertTitle:
		return caseConversion(func() cases.Caser { return cases.Title(tag) }), nil
	}
	return nil, fmt.Errorf("%w: type %s: unknown conversion '%s'", ErrConfig, def.Name, def.Convert)
}

func (def Definition) checkIntRange(value string, n int64) error {
	if def.Min != nil && def.Min.below(n) {
		return typemap.Reject(value, "less than %v", def.Min)
	}
	if def.Max != nil && def.Max.above(n) {
		return typemap.Reject(value, "greater than %v", def.Max)
	}
	return nil
}

func (def Definition) checkRange(value string, f float64) error {
	if def.Min != nil && f < def.Min.value() {
		return typemap.Reject(value, "less than %v", def.Min)
	}
	if def.Max != nil && f > def.Max.value() {
		return typemap.Reject(value, "greater than %v", def.Max)
	}
	return nil
}

// Casers are stateful, thus we create a new one for every value.
func caseConversion(caser func() cases.Caser) typemap.Validator {
	return func(ctx typemap.Context, value string) (interface{}, error) {
		c := caser()
		return c.String(value), nil
	}
}
