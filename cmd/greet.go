package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/brogergvhs/goodmorning/internal/config"
	"github.com/brogergvhs/goodmorning/internal/deliver"
	"github.com/brogergvhs/goodmorning/internal/downloader"
	"github.com/brogergvhs/goodmorning/internal/greeting"
	"github.com/brogergvhs/goodmorning/internal/pipeline"
	"github.com/brogergvhs/goodmorning/internal/sources"
	"github.com/brogergvhs/goodmorning/internal/ui"
	"github.com/brogergvhs/goodmorning/internal/util"

	"github.com/spf13/cobra"
)

var (
	// source
	flagSource string

	// message
	flagTemplate string
	flagEmojis   []string

	// output
	flagNoPaste bool
	flagNoOpen  bool
	flagPrint   bool
	flagSave    string

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
)

func init() {
	f := rootCmd.Flags()

	f.StringVarP(&flagSource, "source", "s", "", "comic source: "+strings.Join(sources.Names(), ", "))

	f.StringVar(&flagTemplate, "template", "", "greeting template with {url} and {emoji} placeholders")
	f.StringSliceVar(&flagEmojis, "emoji", nil, "emoji to pick from (repeatable)")

	f.BoolVar(&flagNoPaste, "no-paste", false, "only copy to the clipboard, don't simulate the paste keystroke")
	f.BoolVar(&flagNoOpen, "no-open", false, "don't open the comic in the browser")
	f.BoolVar(&flagPrint, "print", false, "print the greeting instead of touching the clipboard or browser")
	f.StringVar(&flagSave, "save", "", "also download the comic image into this folder")

	f.StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	f.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	f.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
}

func runGreet(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		Source:           flagSource,
		GreetingTemplate: flagTemplate,
		Emojis:           flagEmojis,
		NoPaste:          flagNoPaste,
		NoOpen:           flagNoOpen,
		SaveDir:          flagSave,
		UserAgent:        flagUserAgent,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLoggerWith(ui.LoggerOptions{Debug: cfg.Debug, File: cfg.LogFile})
	defer logSvc.Sync()
	logSvc.Debugf("Config file: %s\n", usedPath)

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.Timeout(),
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return err
	}

	rng := greeting.NewRand()
	src, err := sources.New(cfg.Source, client, rng, sourceOptions(cfg), logSvc)
	if err != nil {
		return err
	}
	logSvc.Debugf("Using %s source (%s)\n", src.Name(), src.Endpoint())

	ctx := cmd.Context()
	res, err := pipeline.Run(ctx, src, pipeline.Options{
		Template: cfg.GreetingTemplate,
		Emojis:   cfg.Emojis,
		Rand:     rng,
	}, buildSink(cfg, cmd.OutOrStdout(), logSvc), logSvc)
	if err != nil {
		return err
	}

	if cfg.SaveDir != "" {
		if err := saveComic(ctx, client, cfg.SaveDir, res.ComicURL, src.Endpoint(), logSvc); err != nil {
			return err
		}
	}

	if cfg.OpenBrowser && !flagPrint {
		deliver.Browser{Log: logSvc}.OpenURL(ctx, res.ComicURL)
	}

	return nil
}

func sourceOptions(cfg *config.Config) sources.Options {
	return sources.Options{
		ArchiveURLTemplate: cfg.ArchiveURLTemplate,
		JSONFeedURL:        cfg.JSONFeedURL,
		RSSFeedURL:         cfg.RSSFeedURL,
	}
}

func buildSink(cfg *config.Config, out io.Writer, log *ui.Logger) deliver.Deliverer {
	switch {
	case flagPrint:
		return deliver.Stdout{W: out}
	case cfg.Paste:
		return deliver.Paster{Delay: cfg.PasteDelay(), Log: log}
	default:
		return deliver.Clipboard{}
	}
}

func saveComic(ctx context.Context, client *http.Client, dir, comicURL, referer string, log *ui.Logger) error {
	stop := util.SetupInterruptHandler(dir)
	defer stop()

	pm := ui.NewProgressManager(os.Stderr)
	handle := pm.Register(downloader.FileName(comicURL))

	path, n, err := downloader.New(client, log).Save(ctx, comicURL, dir, referer, handle)
	pm.Close()
	if err != nil {
		return fmt.Errorf("could not save comic: %w", err)
	}

	log.Infof("Saved %s (%s)\n", path, util.HumanBytes(n))
	return nil
}
