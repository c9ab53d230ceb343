package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/cbegin/mmlwav-go"
)

type options struct {
	inline      string
	output      string
	sampleRate  int
	maxSeconds  float64
	seed        int64
	preciseSine bool
	jobs        int
	verify      bool
	verbose     bool
}

func main() {
	var o options
	flag.StringVar(&o.inline, "mml", "", "inline MML string")
	flag.StringVar(&o.output, "o", "", "output path for a single score (- for stdout)")
	flag.IntVar(&o.sampleRate, "sample-rate", mmlwav.DefaultSampleRate, "output sample rate")
	flag.Float64Var(&o.maxSeconds, "max-seconds", 3600, "stop rendering past this much audio (0 = no limit)")
	flag.Int64Var(&o.seed, "seed", 1, "noise waveform seed")
	flag.BoolVar(&o.preciseSine, "precise-sine", false, "render @0 with math.Sin")
	flag.IntVar(&o.jobs, "jobs", 4, "files converted in parallel")
	flag.BoolVar(&o.verify, "verify", false, "read each written file back and check its length")
	flag.BoolVar(&o.verbose, "v", false, "log one line per converted file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"mml2wav - render MML scores to mono 16-bit WAV\n\nUsage: mml2wav [options] [score.mml ...]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("mml2wav: ")

	if err := run(o, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(o options, args []string) error {
	logger := log.New(io.Discard, "", 0)
	if o.verbose {
		logger = log.New(os.Stderr, "mml2wav: ", 0)
	}
	opts := []mmlwav.Option{
		mmlwav.WithSampleRate(o.sampleRate),
		mmlwav.WithMaxSeconds(o.maxSeconds),
		mmlwav.WithSeed(o.seed),
		mmlwav.WithPreciseSine(o.preciseSine),
		mmlwav.WithLogger(logger),
	}

	if len(args) == 0 {
		text, err := resolveMMLInput(o.inline, os.Stdin)
		if err != nil {
			return err
		}
		out := o.output
		if out == "" {
			out = "out.wav"
		}
		return convertOne(text, out, o, opts)
	}
	if o.output != "" && len(args) > 1 {
		return errors.New("-o needs exactly one input file")
	}

	g := new(errgroup.Group)
	if o.jobs > 0 {
		g.SetLimit(o.jobs)
	}
	for _, arg := range args {
		arg := arg
		g.Go(func() error {
			in, err := expandPath(arg)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(in)
			if err != nil {
				return errors.Wrapf(err, "read %s", arg)
			}
			out := o.output
			if out == "" {
				out = wavPathFor(in)
			}
			return convertOne(string(data), out, o, opts)
		})
	}
	return g.Wait()
}

func convertOne(text string, out string, o options, opts []mmlwav.Option) error {
	if out == "-" {
		res := mmlwav.Render(text, opts...)
		if res.Truncated {
			log.Printf("stdout: %v", res.Err())
		}
		return mmlwav.WriteWAV(os.Stdout, res)
	}
	path, err := expandPath(out)
	if err != nil {
		return err
	}
	res, err := mmlwav.Convert(text, path, opts...)
	if err != nil {
		return err
	}
	if res.Truncated {
		log.Printf("%s: %v", path, res.Err())
	}
	if o.verify {
		return verify(path, res)
	}
	return nil
}

func verify(path string, res *mmlwav.Result) error {
	samples, sr, err := mmlwav.ReadWAV(path)
	if err != nil {
		return errors.Wrapf(err, "verify %s", path)
	}
	if sr != res.SampleRate || len(samples) != len(res.Samples) {
		return errors.Errorf("verify %s: got %d samples at %d Hz, want %d at %d Hz",
			path, len(samples), sr, len(res.Samples), res.SampleRate)
	}
	return nil
}

func resolveMMLInput(inline string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return string(data), nil
}

func wavPathFor(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".wav"
}

func expandPath(path string) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return os.ExpandEnv(p), nil
}
