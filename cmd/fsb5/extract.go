package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-audio/aiff"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cwbudde/fsb5"
	"github.com/cwbudde/fsb5/internal/log"
)

var errMissingPath = stderrors.New("missing bank path argument")

var extractCmd = cli.Command{
	Name:      "extract",
	Aliases:   []string{"x"},
	Usage:     "Extracts every sample of the banks as standalone files",
	ArgsUsage: "<bank.fsb>...",
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name:   "out, o",
			Usage:  `Output directory`,
			Value:  ".",
			EnvVar: "FSB5_OUT_DIR",
		},
		cli.BoolFlag{
			Name:  "aiff, a",
			Usage: `Write PCM samples as AIFF instead of WAVE`,
		},
		cli.BoolFlag{
			Name:  "raw, r",
			Usage: `Write samples of unsupported codecs as raw .bin payloads`,
		},
	}, verbosityFlags...),
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() < 1 {
			cli.ShowCommandHelp(ctx, "extract")
			return errMissingPath
		}

		configureLog(ctx)

		opts := extractOptions{
			aiff: ctx.Bool("aiff"),
			raw:  ctx.Bool("raw"),
		}

		banks := ctx.Args()
		for _, path := range banks {
			dir := ctx.String("out")
			if len(banks) > 1 {
				dir = filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
			}

			n, err := extractBank(path, dir, opts)
			if err != nil {
				return err
			}

			log.Infof("%s: wrote %d file(s) to %s", path, n, dir)
		}

		return nil
	},
}

type extractOptions struct {
	aiff bool
	raw  bool
}

// extractBank writes every sample of the bank at path into dir and returns
// the number of files written.
func extractBank(path, dir string, opts extractOptions) (int, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrap(err, "reading bank")
	}

	bank, err := fsb5.Open(buf)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing %s", path)
	}

	hdr := bank.Header()
	log.Debugf("%s: %s", path, &hdr)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrap(err, "creating output directory")
	}

	used := make(map[string]bool)
	written := 0

	log.Enter()
	defer log.Leave()

	for _, s := range bank.Samples() {
		log.Debugf("%s", s)

		base := outputBase(s, used)

		switch {
		case opts.aiff && s.Mode().IsPCM():
			err = writeAIFF(filepath.Join(dir, base+".aif"), s)
		default:
			err = writeContainer(dir, base, s, opts.raw)
		}

		if err != nil {
			return written, errors.Wrapf(err, "%s: sample %d", path, s.Index())
		}

		written++
	}

	return written, nil
}

func writeContainer(dir, base string, s *fsb5.Sample, raw bool) error {
	path := filepath.Join(dir, base+"."+s.Mode().FileExtension())

	data, err := s.ContainerBytes()
	if err == nil {
		return writeFile(path, data)
	}

	if !raw || !stderrors.Is(err, fsb5.ErrCodec) {
		return err
	}

	log.Warnf("sample %d: %v, writing raw payload", s.Index(), err)

	return writeFile(path, s.Data())
}

func writeAIFF(path string, s *fsb5.Sample) error {
	buf, err := s.PCMBuffer()
	if err != nil {
		return err
	}

	return writeWith(path, func(f *os.File) error {
		enc := aiff.NewEncoder(f, buf.Format.SampleRate, buf.SourceBitDepth, buf.Format.NumChannels)
		if err := enc.Write(buf); err != nil {
			return errors.Wrap(err, "encoding aiff")
		}

		return errors.Wrap(enc.Close(), "finishing aiff")
	})
}

func writeFile(path string, data []byte) error {
	return writeWith(path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}

// writeWith creates path, hands it to write and removes it again if anything
// fails.
func writeWith(path string, write func(f *os.File) error) error {
	beginPartial(path)
	defer endPartial()

	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}

	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		os.Remove(path)
		return errors.Wrapf(err, "writing %s", path)
	}

	log.Debugf("wrote %s", path)

	return nil
}

// outputBase returns the file name, without extension, for s. Names are
// reduced to a single path element and made unique within one bank.
func outputBase(s *fsb5.Sample, used map[string]bool) string {
	base := fmt.Sprint(s.Index())
	if name, ok := s.Name(); ok {
		if clean := sanitizeName(name); clean != "" {
			base = clean
		}
	}

	if used[base] {
		base = fmt.Sprintf("%s-%d", base, s.Index())
	}

	used[base] = true

	return base
}

func sanitizeName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}

		return r
	}, name)

	clean = strings.TrimSpace(clean)
	if clean == "." || clean == ".." {
		return ""
	}

	return clean
}

// partial is the output file currently being written. An interrupt removes
// it so no truncated sample is left behind.
var partial struct {
	sync.Mutex
	path string
}

func beginPartial(path string) {
	partial.Lock()
	partial.path = path
	partial.Unlock()
}

func endPartial() {
	beginPartial("")
}

func removePartial() {
	partial.Lock()
	defer partial.Unlock()

	if partial.path == "" {
		return
	}

	if err := os.Remove(partial.path); err == nil {
		log.Warnf("removed partially written %s", partial.path)
	}

	partial.path = ""
}
