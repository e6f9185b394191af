package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/formula"
)

func main() {
	var (
		inname, verb, varsname, cfgname, loc string
		with                                 [][2]string
		nl, echo, makecfg, v, vv             bool
		prec                                 uint
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%s", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.StringVar(&varsname, "vars", "", "YAML file of variable values")
	flag.StringVar(&cfgname, "config", "", "YAML parsing configuration")
	flag.BoolVar(&makecfg, "make-config", false, "print the default configuration and exit")
	flag.UintVar(&prec, "p", 0, "precision of calculations in bits (default from config, or 64)")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print evaluation trees")
	flag.StringVar(&loc, "pattern", "", "print each expression formatted for a locale, e.g. en or de")
	flag.BoolVar(&v, "v", false, "log rule dispatch")
	flag.BoolVar(&vv, "vv", false, "log every rule attempt")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	switch {
	case vv:
		log = log.Level(zerolog.TraceLevel)
	case v:
		log = log.Level(zerolog.DebugLevel)
	default:
		log = log.Level(zerolog.InfoLevel)
	}

	if makecfg {
		if _, err := formula.DefaultConfig().WriteTo(os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("writing config")
		}
		return
	}

	opts := formula.NewOptions()
	if cfgname != "" {
		f, err := os.Open(cfgname)
		if err != nil {
			log.Fatal().Err(err).Msg("opening config")
		}
		opts, err = formula.LoadConfig(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", cfgname).Msg("loading config")
		}
	}
	if prec != 0 {
		opts.SetPrec(prec)
	}
	opts.SetLogger(log)

	var tag language.Tag
	if loc != "" {
		t, err := language.Parse(loc)
		if err != nil {
			log.Fatal().Err(err).Str("locale", loc).Msg("bad locale")
		}
		tag = t
	}

	store := formula.NewStore()
	if varsname != "" {
		f, err := os.Open(varsname)
		if err != nil {
			log.Fatal().Err(err).Msg("opening variables")
		}
		store, err = formula.LoadStore(f, opts.Prec())
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", varsname).Msg("loading variables")
		}
	}
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		e, err := formula.Parse(vl, opts)
		if err != nil {
			log.Fatal().Err(err).Str("name", nm).Msg("parsing variable definition")
		}
		r, err := e.Eval(store)
		if err != nil {
			log.Fatal().Err(err).Str("name", nm).Msg("evaluating variable definition")
		}
		store.Set(nm, r.Value)
	}

	srcs, err := inputs(inname, flag.Args(), nl)
	if err != nil {
		log.Fatal().Err(err).Msg("reading input")
	}

	var p []*formula.Expr
	for _, src := range srcs {
		a, err := formula.Parse(src, opts)
		if err != nil {
			log.Fatal().Err(err).Str("expr", src).Msg("parse failed")
		}
		p = append(p, a)
	}

	out := report{w: os.Stdout, log: log, verb: verb + "\n", tag: tag, pattern: loc != "", echo: echo}
	if out.run(p, store) != 0 {
		os.Exit(1)
	}
}

// report writes the results of evaluating expressions.
type report struct {
	w       io.Writer
	log     zerolog.Logger
	verb    string
	tag     language.Tag
	pattern bool
	echo    bool
}

// run evaluates each expression against st and writes its result. Evaluation
// errors are written in place of results. Write errors are logged, and run
// returns how many there were.
func (rp *report) run(p []*formula.Expr, st formula.Storage) int {
	failed := 0
	for _, a := range p {
		var err error
		if rp.pattern {
			_, err = fmt.Fprintf(rp.w, "%s : ", a.Pattern(rp.tag))
		}
		r, everr := a.Eval(st)
		switch {
		case err != nil:
		case everr != nil:
			_, err = fmt.Fprintln(rp.w, everr)
		case rp.echo:
			err = r.WriteDebug(rp.w, "  ")
		default:
			_, err = fmt.Fprintf(rp.w, rp.verb, r)
		}
		if err != nil {
			rp.log.Error().Err(err).Str("expr", a.String()).Msg("writing result")
			failed++
		}
	}
	return failed
}

// inputs collects the expressions to evaluate. If there are no arguments or
// inname is given, the input file is read too.
func inputs(inname string, args []string, nl bool) ([]string, error) {
	var srcs []string
	f, err := infile(inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if f != nil {
		defer f.Close()
		if nl {
			sc := bufio.NewScanner(f)
			for sc.Scan() {
				if line := sc.Text(); strings.TrimSpace(line) != "" {
					srcs = append(srcs, line)
				}
			}
			if err := sc.Err(); err != nil {
				return nil, err
			}
		} else {
			b, err := io.ReadAll(f)
			if err != nil {
				return nil, err
			}
			srcs = append(srcs, string(b))
		}
	}
	return append(srcs, args...), nil
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
