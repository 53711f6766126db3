/*
Package typemap maintains the named value types which may be referenced
from within a wordex expression with `@Name`.

A type map pairs a regular expression fragment with a function to validate
and convert a matched value. The fragment decides which input is
syntactically acceptable; the validator may additionally reject input on
semantic grounds, e.g. an IP address with a component > 255:

    reg := typemap.Default()
    reg.Register("IP", `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`,
        func(ctx typemap.Context, value string) (interface{}, error) {
            parts := strings.Split(value, ".")
            ip := make([]int, len(parts))
            for i, p := range parts {
                n, _ := strconv.Atoi(p)
                if n > 255 {
                    return nil, typemap.Reject(value, "component %d out of range", i)
                }
                ip[i] = n
            }
            return ip, nil
        })

Fragments must not contain capturing groups; use (?:...) for grouping.

Registries are meant to be set up before matching starts. They are
guarded by a lock, but type maps are resolved at compile time, thus
re-registering a name does not affect patterns compiled before.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package typemap

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to the core tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}
