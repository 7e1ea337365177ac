package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"veil-go/internal/fn"
	"veil-go/pkg/log"
	"veil-go/pkg/transform"
	"veil-go/pkg/veil"

	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetStd()

	app := &cli.App{
		Name:  "veil",
		Usage: "keyed text obfuscation (double-keyed substitution + positional interleave)",
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "obfuscate a string, file or stream",
				ArgsUsage: "[text]",
				Flags:     transformFlags(),
				Action:    func(c *cli.Context) error { return run(c, true) },
			},
			{
				Name:      "decode",
				Usage:     "recover the original text",
				ArgsUsage: "[text]",
				Flags:     transformFlags(),
				Action:    func(c *cli.Context) error { return run(c, false) },
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("veil failed")
		os.Exit(1)
	}
}

func transformFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "first key (required)", Required: true},
		&cli.StringFlag{Name: "key2", Aliases: []string{"K"}, Usage: "second key (defaults to a fixed public constant)"},
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "operate on `FILE` instead of the argument string"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write output to `FILE` instead of stdout"},
		&cli.BoolFlag{Name: "stream", Aliases: []string{"s"}, Usage: "streaming substitution-only mode (no interleave)"},
		&cli.BoolFlag{Name: "compress", Aliases: []string{"z"}, Usage: "zstd-compress after obfuscation (whole-buffer mode only)"},
	}
}

func newCodec(c *cli.Context) (*veil.Codec, error) {
	if k2 := c.String("key2"); k2 != "" {
		return veil.New(c.String("key"), k2)
	}
	return veil.NewWithDefault(c.String("key"))
}

func run(c *cli.Context, encode bool) error {
	direction := fn.T(encode, "encode", "decode")

	if c.Bool("stream") {
		if c.Bool("compress") {
			return errors.New("--compress needs the whole buffer; it cannot combine with --stream")
		}
		return runStream(c, encode)
	}

	in, err := readInput(c)
	if err != nil {
		return err
	}

	stages := []transform.Transform{}
	veilStage, err := transform.NewVeilTransform(c.String("key"), c.String("key2"))
	if err != nil {
		return err
	}
	stages = append(stages, veilStage)
	if c.Bool("compress") {
		zstdStage, err := transform.NewZstdTransform(zstd.SpeedFastest)
		if err != nil {
			return err
		}
		stages = append(stages, zstdStage)
	}
	p, err := transform.NewPipeline(stages)
	if err != nil {
		return err
	}

	out, err := fn.T(encode, p.Forward, p.Backward)(in)
	if err != nil {
		return fmt.Errorf("%s: %w", direction, err)
	}
	return writeOutput(c, out)
}

func runStream(c *cli.Context, encode bool) error {
	codec, err := newCodec(c)
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if path := c.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	var w io.Writer = os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if encode {
		return codec.EncodeStream(r, w)
	}
	return codec.DecodeStream(r, w)
}

func readInput(c *cli.Context) ([]byte, error) {
	if path := c.String("file"); path != "" {
		return os.ReadFile(path)
	}
	if c.Args().Len() > 0 {
		return []byte(c.Args().First()), nil
	}
	return io.ReadAll(os.Stdin)
}

func writeOutput(c *cli.Context, data []byte) error {
	if path := c.String("out"); path != "" {
		return os.WriteFile(path, data, 0644)
	}
	_, err := os.Stdout.Write(data)
	return err
}
