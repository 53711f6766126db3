// Command wordex matches lines of standard input against a command
// expression and prints the values it extracts.
//
//     echo "add 3 apples, pears" | wordex -e "add :n@Integer *fruit"
//
// prints
//
//     fruit=[apples pears] n=3
//
// Lines which do not match print "no match". Type maps may be declared in a
// TOML file (see package typeconf) and are added to the built-in types.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/wordex"
	"github.com/npillmayer/wordex/typeconf"
	"github.com/npillmayer/wordex/typemap"
	"github.com/ogier/pflag"
)

var (
	optExpr    = pflag.StringP("expr", "e", "", "Command expression to match")
	optTypes   = pflag.StringP("types", "t", "", "TOML file with type map definitions")
	optVerbose = pflag.BoolP("verbose", "v", false, "Trace compilation and matching")
)

func main() {
	pflag.Usage = usage
	pflag.Parse()
	if *optExpr == "" && pflag.NArg() > 0 {
		*optExpr = strings.Join(pflag.Args(), " ")
	}
	if *optExpr == "" {
		usage()
		os.Exit(2)
	}
	if *optVerbose {
		gtrace.CoreTracer = gologadapter.New()
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	}
	pattern, err := compile(*optExpr, *optTypes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordex: %v\n", err)
		os.Exit(1)
	}
	if err := process(pattern, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "wordex: %v\n", err)
		os.Exit(1)
	}
}

func compile(expr, typesFile string) (*wordex.Pattern, error) {
	reg := typemap.NewRegistry()
	if typesFile != "" {
		conf, err := typeconf.Load(typesFile)
		if err != nil {
			return nil, err
		}
		if err = conf.Install(reg); err != nil {
			return nil, err
		}
	}
	pattern, err := wordex.Compile(expr, wordex.WithRegistry(reg))
	if err != nil {
		return nil, err
	}
	gtrace.CoreTracer.Debugf("pattern = %s", pattern.Regexp())
	return pattern, nil
}

// process matches every line of in and reports to out.
func process(pattern *wordex.Pattern, in io.Reader, out io.Writer) error {
	s := bufio.NewScanner(in)
	for s.Scan() {
		m, err := pattern.Match(s.Text())
		if err != nil {
			return err
		}
		if m == nil {
			fmt.Fprintln(out, "no match")
			continue
		}
		fmt.Fprintln(out, format(m))
	}
	return s.Err()
}

func format(m *wordex.Match) string {
	var b strings.Builder
	for i, name := range m.Names() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", name, m.Get(name))
	}
	return b.String()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-t types.toml] [-v] -e expression\n", os.Args[0])
	pflag.PrintDefaults()
}
