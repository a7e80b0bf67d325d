// Command rgb2spec converts RGB colours to spectral coefficients and back.
//
// Usage:
//
//	rgb2spec [-config file] [-asset name] [-v] command [args]
//
// Commands:
//
//	fetch R G B            print the coefficients of a linear RGB colour
//	eval R G B [λ...]      print the reflectance of a colour at wavelengths
//	rgb c0 c1 c2           reconstruct linear RGB from coefficients
//	check [-steps N]       report round-trip error over an RGB grid
//	texture -in IMG -out PNG
//	                       upsample an image and write its reconstruction
//	info                   describe the coefficient table
//	pack -in F -out F [-format zstd|xz|none]
//	                       rewrite a table with another compression
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/spectral"
	"github.com/gogpu/spectral/config"
	"github.com/gogpu/spectral/model"
)

var errUsage = errors.New("usage: rgb2spec [-config file] [-asset name] [-v] fetch|eval|rgb|check|texture|info|pack [args]")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "rgb2spec:", err)
		os.Exit(1)
	}
}

// app carries the state shared by all commands.
type app struct {
	cfg    *config.Config
	store  *spectral.Store
	stdout io.Writer
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("rgb2spec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath = fs.String("config", "", "TOML settings file")
		asset   = fs.String("asset", "", "coefficient table name or path")
		verbose = fs.Bool("v", false, "log debug information")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	if *asset != "" {
		cfg.Asset = *asset
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if *verbose {
		level = slog.LevelDebug
	}
	spectral.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer spectral.SetLogger(nil)

	a := &app{
		cfg:    cfg,
		store:  spectral.NewStore(cfg.StoreOptions()...),
		stdout: stdout,
	}
	defer a.store.Close()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "fetch":
		return a.fetch(rest)
	case "eval":
		return a.eval(rest)
	case "rgb":
		return a.rgb(rest)
	case "check":
		return a.check(rest)
	case "texture":
		return a.texture(rest)
	case "info":
		return a.info()
	case "pack":
		return pack(rest)
	}
	return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseTriple(args []string, what string) ([3]float32, error) {
	if len(args) < 3 {
		return [3]float32{}, fmt.Errorf("expected three %s values, got %d", what, len(args))
	}
	v, err := parseFloats(args[:3])
	if err != nil {
		return [3]float32{}, err
	}
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}, nil
}

func warnClamped(rgb [3]float32) {
	for _, v := range rgb {
		if !(v >= 0 && v <= 1) {
			spectral.Logger().Warn("rgb2spec: component outside [0, 1] is clamped", "rgb", rgb)
			return
		}
	}
}

func (a *app) fetch(args []string) error {
	rgb, err := parseTriple(args, "RGB")
	if err != nil {
		return err
	}
	warnClamped(rgb)
	c, err := a.store.Fetch(spectral.RGB(rgb))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%g %g %g\n", c[0], c[1], c[2])
	return nil
}

func (a *app) eval(args []string) error {
	rgb, err := parseTriple(args, "RGB")
	if err != nil {
		return err
	}
	warnClamped(rgb)
	lambda, err := parseFloats(args[3:])
	if err != nil {
		return err
	}
	if len(lambda) == 0 {
		lambda = []float64{400, 450, 500, 550, 600, 650, 700}
	}

	c, err := a.store.Fetch(spectral.RGB(rgb))
	if err != nil {
		return err
	}
	for i, r := range spectral.EvalSlice(c, lambda, nil) {
		fmt.Fprintf(a.stdout, "%g\t%.6f\n", lambda[i], r)
	}
	fmt.Fprintf(a.stdout, "mean\t%.6f\n", spectral.Mean[float64](c))
	return nil
}

func (a *app) rgb(args []string) error {
	c, err := parseTriple(args, "coefficient")
	if err != nil {
		return err
	}
	ig, err := a.cfg.Integrator()
	if err != nil {
		return err
	}
	rgb := spectral.IntegrateRGB[float64](ig, spectral.Coeff(c))
	fmt.Fprintf(a.stdout, "%.6f %.6f %.6f\n", rgb[0], rgb[1], rgb[2])
	return nil
}

func (a *app) check(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	steps := fs.Int("steps", 8, "grid points per channel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *steps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d", *steps)
	}

	ig, err := a.cfg.Integrator()
	if err != nil {
		return err
	}

	n := *steps
	var (
		worst     float64
		worstRGB  spectral.RGB
		sum       float64
		count     int
		start     = time.Now()
		lastScale = float32(n - 1)
	)
	for r := range n {
		for g := range n {
			for b := range n {
				rgb := spectral.RGB{float32(r) / lastScale, float32(g) / lastScale, float32(b) / lastScale}
				c, err := a.store.Fetch(rgb)
				if err != nil {
					return err
				}
				back := spectral.IntegrateRGB[float64](ig, c)
				var e float64
				for i := range back {
					e = max(e, math.Abs(back[i]-float64(rgb[i])))
				}
				if e > worst {
					worst, worstRGB = e, rgb
				}
				sum += e
				count++
			}
		}
	}

	spectral.Logger().Debug("rgb2spec: check finished", "colors", count, "elapsed", time.Since(start))
	fmt.Fprintf(a.stdout, "colors\t%d\nmean\t%.6f\nmax\t%.6f at %v\n", count, sum/float64(count), worst, worstRGB)
	return nil
}

func (a *app) texture(args []string) error {
	fs := flag.NewFlagSet("texture", flag.ContinueOnError)
	var (
		in     = fs.String("in", "", "input image (png, jpeg, bmp, tiff, webp)")
		out    = fs.String("out", "", "output PNG")
		linear = fs.Bool("linear", false, "input pixels are linear RGB")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return errors.New("texture: -in and -out are required")
	}

	img, err := decodeImage(*in)
	if err != nil {
		return err
	}

	opts := a.cfg.UpsampleOptions()
	if *linear {
		opts = append(opts, spectral.WithLinearInput())
	}
	m, err := spectral.UpsampleImage(a.store, img, opts...)
	if err != nil {
		return err
	}

	ig, err := a.cfg.Integrator()
	if err != nil {
		return err
	}
	return writePNG(*out, m.Preview(ig))
}

func (a *app) info() error {
	t, err := a.store.Table()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "asset\t%s\nres\t%d\nbytes\t%d\nxxh3\t%016x\n",
		a.store.Asset(), t.Res(), t.Size(), t.Checksum())
	return nil
}

func pack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	var (
		in     = fs.String("in", "", "input table")
		out    = fs.String("out", "", "output table")
		format = fs.String("format", "zstd", "compression: zstd, xz or none")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return errors.New("pack: -in and -out are required")
	}

	var c model.Compression
	switch *format {
	case "zstd":
		c = model.Zstd
	case "xz":
		c = model.XZ
	case "none":
		c = model.None
	default:
		return fmt.Errorf("pack: unknown format %q", *format)
	}

	t, err := model.Open(*in)
	if err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := t.EncodeCompressed(f, c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	spectral.Logger().Debug("rgb2spec: decoded image", "path", path, "format", format, "bounds", img.Bounds())
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
