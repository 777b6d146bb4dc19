// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bms/common"
	"bms/config"
	"bms/site"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// render subcommand, configuration with command line applied on top
	Site      site.Settings
	JobsPath  string
	Overwrite bool

	start         time.Time
	restoreStdLog func()
}

// RenderFlags are command line values of render subcommand. Nil pointers
// and false values leave configuration alone.
type RenderFlags struct {
	Base        *string
	JobsPath    *string
	ExternalCSS bool
	Minify      bool
	Overwrite   bool
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now(), Log: zap.NewNop()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// SiteSettings maps site configuration to page assembly settings.
func SiteSettings(cfg *config.SiteConfig) site.Settings {
	return site.Settings{
		Base:           cfg.Base,
		Company:        cfg.Company,
		Language:       cfg.Language,
		TitleTemplate:  cfg.TitleTemplate,
		ClassPrefix:    cfg.ClassPrefix,
		StylesheetPath: cfg.StylesheetPath,
		External:       cfg.Stylesheet == common.StylesheetModeExternal,
		Minify:         cfg.Minify,
	}
}

// PrepareRender resolves page settings and jobs location for render
// subcommand. Configuration must be loaded.
func (e *LocalEnv) PrepareRender(f RenderFlags) {
	e.Site = SiteSettings(&e.Cfg.Site)
	e.JobsPath = e.Cfg.Site.JobsPath

	if f.Base != nil {
		e.Site.Base = *f.Base
	}
	if f.JobsPath != nil {
		e.JobsPath = *f.JobsPath
	}
	e.Site.External = e.Site.External || f.ExternalCSS
	e.Site.Minify = e.Site.Minify || f.Minify
	e.Overwrite = f.Overwrite

	e.Log.Debug("Render settings",
		zap.String("base", e.Site.Base),
		zap.String("jobs", e.JobsPath),
		zap.Bool("external", e.Site.External),
		zap.Bool("minify", e.Site.Minify),
		zap.Bool("overwrite", e.Overwrite),
	)
}

// ClassPrefix returns prefix for compiled class names, flag value wins
// over configuration.
func (e *LocalEnv) ClassPrefix(flag *string) string {
	if flag != nil {
		return *flag
	}
	if e.Cfg == nil {
		return ""
	}
	return e.Cfg.Site.ClassPrefix
}

// ReportJobs snapshots jobs source into debug report, if there is one.
func (e *LocalEnv) ReportJobs() {
	if e.Rpt == nil || e.JobsPath == "" {
		return
	}
	if err := e.Rpt.StoreCopy("jobs", e.JobsPath); err != nil {
		e.Log.Warn("Unable to add jobs to report", zap.String("path", e.JobsPath), zap.Error(err))
	}
}

// SetLogger replaces program logger and sends standard library log output
// to it.
func (e *LocalEnv) SetLogger(log *zap.Logger) {
	if log == nil {
		return
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
	e.Log = log
	e.restoreStdLog = zap.RedirectStdLog(log)
}

// Close flushes the log, gives standard library log back and writes debug
// report. Errors from here on could only go to stderr.
func (e *LocalEnv) Close() error {
	_ = e.Log.Sync()
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
	rpt := e.Rpt
	e.Rpt = nil
	if err := rpt.Close(); err != nil {
		return fmt.Errorf("unable to close debug report: %w", err)
	}
	return nil
}
