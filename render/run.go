package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"bms/common"
	"bms/jobs"
	"bms/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	dst := cmd.Args().Get(0)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	format, err := common.ParseOutputFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to dir", zap.Error(err))
		format = common.OutputFmtDir
	}

	flags := state.RenderFlags{
		ExternalCSS: cmd.Bool("external-css"),
		Minify:      cmd.Bool("minify"),
		Overwrite:   cmd.Bool("overwrite"),
	}
	if cmd.IsSet("base") {
		base := cmd.String("base")
		flags.Base = &base
	}
	if cmd.IsSet("jobs") {
		path := cmd.String("jobs")
		flags.JobsPath = &path
	}
	env.PrepareRender(flags)

	list, err := jobs.Load(env.JobsPath)
	if err != nil {
		return err
	}
	env.ReportJobs()

	log.Info("Rendering starting",
		zap.String("destination", dst),
		zap.Stringer("format", format),
		zap.Int("jobs", len(list)),
	)
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	out, err := Process(ctx, Request{
		Settings:    env.Site,
		Jobs:        list,
		Destination: dst,
		Format:      format,
		Overwrite:   env.Overwrite,
	}, env.Rpt, log)
	if err != nil {
		return err
	}
	log.Info("Page written", zap.String("location", out))
	return nil
}
