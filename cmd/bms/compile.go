package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bms/state"
	"bms/style"
)

// parseProps turns KEY=VALUE arguments into props. Values which look like
// finite numbers become numbers, so length properties get units.
func parseProps(args []string) (style.Props, error) {
	if len(args) == 0 {
		return nil, errors.New("no style props have been specified")
	}
	p := make(style.Props, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed style prop %q, expected KEY=VALUE", arg)
		}
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			p[key] = i
		} else if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			p[key] = f
		} else {
			p[key] = value
		}
	}
	return p, nil
}

func compileProps(w io.Writer, c *style.Compiler, p style.Props, minify bool) (string, error) {
	class := c.Compile(p)
	if class == "" {
		return "", nil
	}
	sheet := c.Stylesheet()
	var err error
	if minify {
		_, err = sheet.WriteCompact(w)
	} else {
		_, err = sheet.WriteTo(w)
	}
	return class, err
}

func compileStyle(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	p, err := parseProps(cmd.Args().Slice())
	if err != nil {
		return err
	}

	var flag *string
	if cmd.IsSet("prefix") {
		prefix := cmd.String("prefix")
		flag = &prefix
	}
	c := style.NewCompiler(nil, style.WithPrefix(env.ClassPrefix(flag)), style.WithLogger(env.Log))

	var out strings.Builder
	class, err := compileProps(&out, c, p, cmd.Bool("minify") || env.Cfg.Site.Minify)
	if err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if class == "" {
		log.Warn("Style props produce no declarations", zap.Strings("props", cmd.Args().Slice()))
		return nil
	}
	env.Rpt.StoreData("compile.css", []byte(out.String()))

	if _, err := fmt.Fprintf(os.Stdout, "%s\n\n%s", class, out.String()); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	return nil
}
