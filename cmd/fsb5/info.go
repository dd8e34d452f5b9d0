package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/cwbudde/fsb5"
)

var infoCmd = cli.Command{
	Name:      "info",
	Aliases:   []string{"i"},
	Usage:     "Prints the header and sample table of the banks",
	ArgsUsage: "<bank.fsb>...",
	Flags: append([]cli.Flag{
		cli.BoolFlag{
			Name:  "json, j",
			Usage: `Prints in JSON format`,
		},
	}, verbosityFlags...),
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() < 1 {
			cli.ShowCommandHelp(ctx, "info")
			return errMissingPath
		}

		configureLog(ctx)

		for _, path := range ctx.Args() {
			info, err := readBankInfo(path)
			if err != nil {
				return err
			}

			if ctx.Bool("json") {
				j, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return errors.WithStack(err)
				}

				fmt.Fprintln(ctx.App.Writer, string(j))

				continue
			}

			info.print(ctx.App.Writer)
		}

		return nil
	},
}

type bankInfo struct {
	File       string       `json:"file"`
	Version    uint32       `json:"version"`
	Mode       string       `json:"mode"`
	DataSize   uint32       `json:"dataSize"`
	HasNames   bool         `json:"hasNames"`
	Samples    []sampleInfo `json:"samples"`
	headerLine string
}

type sampleInfo struct {
	Index      int      `json:"index"`
	Name       string   `json:"name,omitempty"`
	Frequency  uint32   `json:"frequency"`
	Channels   int      `json:"channels"`
	DataOffset uint32   `json:"dataOffset"`
	DataLength uint32   `json:"dataLength"`
	Frames     uint32   `json:"frames"`
	DurationMS int64    `json:"durationMs"`
	Loop       *loop    `json:"loop,omitempty"`
	Chunks     []string `json:"chunks,omitempty"`
	FileName   string   `json:"fileName"`
	line       string
}

type loop struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

func readBankInfo(path string) (*bankInfo, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading bank")
	}

	bank, err := fsb5.Open(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	hdr := bank.Header()
	info := &bankInfo{
		File:       path,
		Version:    hdr.Version,
		Mode:       hdr.Mode.String(),
		DataSize:   hdr.DataSize,
		HasNames:   hdr.NameTableSize > 0,
		headerLine: hdr.String(),
	}

	for _, s := range bank.Samples() {
		d := s.Descriptor()
		si := sampleInfo{
			Index:      d.Index,
			Frequency:  d.Frequency,
			Channels:   d.Channels,
			DataOffset: d.DataOffset,
			DataLength: d.DataLength,
			Frames:     d.SampleCount,
			DurationMS: s.Duration().Milliseconds(),
			FileName:   s.FileName(),
			line:       s.String(),
		}

		if name, ok := s.Name(); ok {
			si.Name = name
		}

		if l, ok := s.Loop(); ok {
			si.Loop = &loop{Start: l.Start, End: l.End}
		}

		for _, c := range d.Chunks {
			si.Chunks = append(si.Chunks, c.Type().String())
		}

		info.Samples = append(info.Samples, si)
	}

	return info, nil
}

func (b *bankInfo) print(out io.Writer) {
	fmt.Fprintf(out, "%s: %s\n", b.File, b.headerLine)

	for _, s := range b.Samples {
		fmt.Fprintf(out, "  %s\n", s.line)

		if s.Loop != nil {
			fmt.Fprintf(out, "    loop: %d..%d\n", s.Loop.Start, s.Loop.End)
		}
	}
}
